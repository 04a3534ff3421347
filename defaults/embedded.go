// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.

package defaults

import _ "embed"

//go:embed texelcons.json
var consoleConfig []byte

// ConsoleConfig returns the embedded default config JSON.
func ConsoleConfig() []byte {
	return consoleConfig
}
