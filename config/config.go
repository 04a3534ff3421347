// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Console configuration: buffer sizes, output devices, shell prompt.
// Usage: Load(path) reads JSON (or YAML for .yaml/.yml paths) over the
// embedded defaults; an absent file yields the defaults.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelcons/defaults"
)

// Serial line attachment modes.
const (
	SerialNone  = "none"
	SerialStdio = "stdio"
	SerialPTY   = "pty"
)

// Config is the full configuration file.
type Config struct {
	Console ConsoleConfig `json:"console" yaml:"console"`
	Display DisplayConfig `json:"display" yaml:"display"`
	Serial  SerialConfig  `json:"serial" yaml:"serial"`
	Shell   ShellConfig   `json:"shell" yaml:"shell"`
	// LogFile receives log output. Empty means texelcons.log next to the
	// config file.
	LogFile string `json:"log_file" yaml:"log_file"`
}

// ConsoleConfig sizes the line discipline.
type ConsoleConfig struct {
	InputBuffer int `json:"input_buffer" yaml:"input_buffer"`
	HistorySize int `json:"history_size" yaml:"history_size"`
}

// DisplayConfig controls the tcell display.
type DisplayConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// SerialConfig selects how the serial line is attached.
type SerialConfig struct {
	Mode string `json:"mode" yaml:"mode"`
}

// ShellConfig configures the bundled shell.
type ShellConfig struct {
	Prompt string `json:"prompt" yaml:"prompt"`
}

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := json.Unmarshal(defaults.ConsoleConfig(), &cfg); err != nil {
		// The embedded file is part of the build; a parse failure is a bug.
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	log.Printf("Config: writing %s", path)
	return os.WriteFile(path, data, 0644)
}

// Validate rejects sizes and modes the console cannot run with.
func (c Config) Validate() error {
	if c.Console.InputBuffer < 2 {
		return fmt.Errorf("console.input_buffer must be at least 2, got %d", c.Console.InputBuffer)
	}
	if c.Console.HistorySize < 1 {
		return fmt.Errorf("console.history_size must be positive, got %d", c.Console.HistorySize)
	}
	switch c.Serial.Mode {
	case SerialNone, SerialStdio, SerialPTY:
	default:
		return fmt.Errorf("serial.mode %q: want %s, %s or %s", c.Serial.Mode, SerialNone, SerialStdio, SerialPTY)
	}
	if !c.Display.Enabled && c.Serial.Mode == SerialNone {
		return fmt.Errorf("no output device: enable the display or a serial mode")
	}
	if c.Display.Enabled && c.Serial.Mode == SerialStdio {
		return fmt.Errorf("serial.mode %q needs the terminal the display is using", SerialStdio)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
