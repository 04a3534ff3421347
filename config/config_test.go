// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 128, cfg.Console.InputBuffer)
	assert.Equal(t, 16, cfg.Console.HistorySize)
	assert.True(t, cfg.Display.Enabled)
	assert.Equal(t, SerialNone, cfg.Serial.Mode)
	assert.Equal(t, "$ ", cfg.Shell.Prompt)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadJSONOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"console":{"history_size":4},"serial":{"mode":"pty"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Console.HistorySize)
	assert.Equal(t, 128, cfg.Console.InputBuffer, "unset keys keep defaults")
	assert.Equal(t, SerialPTY, cfg.Serial.Mode)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "console:\n  input_buffer: 64\ndisplay:\n  enabled: false\nserial:\n  mode: stdio\nshell:\n  prompt: \"> \"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Console.InputBuffer)
	assert.False(t, cfg.Display.Enabled)
	assert.Equal(t, SerialStdio, cfg.Serial.Mode)
	assert.Equal(t, "> ", cfg.Shell.Prompt)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad.json":    `{"console":`,
		"size.json":   `{"console":{"input_buffer":0}}`,
		"mode.json":   `{"serial":{"mode":"usb"}}`,
		"output.json": `{"display":{"enabled":false}}`,
		"tty.json":    `{"serial":{"mode":"stdio"}}`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		cfg, err := Load(path)
		assert.Error(t, err, name)
		assert.Equal(t, Default(), cfg, name)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := DefaultPath()
	require.NoError(t, err)

	cfg := Default()
	cfg.Shell.Prompt = "# "
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "texelcons.log"), loaded.LogPath(path))

	cfg.LogFile = "/tmp/x.log"
	assert.Equal(t, "/tmp/x.log", cfg.LogPath(path))
}
