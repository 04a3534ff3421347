// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelcons/main.go
// Summary: Boots a console with line editing and command history and runs a
// shell on it.
// Usage: texelcons [-config path] [-serial none|stdio|pty] [-no-display] [-write-config]

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/framegrace/texelcons/config"
	"github.com/framegrace/texelcons/internal/devshell"
)

func main() {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		defaultPath = "texelcons.json"
	}
	configPath := flag.String("config", defaultPath, "config file (.json, .yaml or .yml)")
	serialMode := flag.String("serial", "", "serial line: none, stdio or pty (overrides config)")
	noDisplay := flag.Bool("no-display", false, "run without the screen display")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("texelcons: %v", err)
	}
	if *serialMode != "" {
		cfg.Serial.Mode = *serialMode
	}
	if *noDisplay {
		cfg.Display.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("texelcons: %v", err)
	}
	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatalf("texelcons: %v", err)
		}
		return
	}

	logPath := cfg.LogPath(*configPath)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Fatalf("texelcons: %v", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("texelcons: open log: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("texelcons starting...")

	if err := devshell.Run(cfg); err != nil {
		log.Printf("texelcons: %v", err)
		fmt.Fprintf(os.Stderr, "texelcons: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
	log.Println("texelcons stopped cleanly.")
}
