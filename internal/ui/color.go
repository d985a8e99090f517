// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides terminal output helpers for the edxconcat CLI.
//
// Colours follow fatih/color and are off when --no-color is given, when
// NO_COLOR is set, or when stdout is not a TTY.
//
// Colour usage:
//   - Red: failures
//   - Yellow: skipped files and other warnings
//   - Green: saved datasets, completed scans
//   - Cyan: counts and informational lines
//   - Bold: headers and labels
//   - Dim: paths
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Out is where the message helpers write. Tests may replace it.
var Out io.Writer = color.Output

var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

// InitColors disables colour output when noColor is true.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Successf prints a green line prefixed with a check mark.
func Successf(format string, args ...any) {
	_, _ = Green.Fprintf(Out, "✓ "+format+"\n", args...)
}

// Warningf prints a yellow line prefixed with a warning sign.
func Warningf(format string, args ...any) {
	_, _ = Yellow.Fprintf(Out, "⚠ "+format+"\n", args...)
}

// Infof prints a cyan line prefixed with an info sign.
func Infof(format string, args ...any) {
	_, _ = Cyan.Fprintf(Out, "ℹ "+format+"\n", args...)
}

// Header prints a bold title underlined with '='.
func Header(text string) {
	_, _ = Bold.Fprintln(Out, text)
	fmt.Fprintln(Out, strings.Repeat("=", len([]rune(text))))
}

// SubHeader prints a bold title.
func SubHeader(text string) {
	_, _ = Bold.Fprintln(Out, text)
}

// Field prints an indented "label value" line with a bold label.
func Field(label string, value any) {
	fmt.Fprintf(Out, "  %s %v\n", Label(label), value)
}

// Label returns text in bold.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns text dimmed, for paths and other secondary detail.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a count in cyan.
func CountText(count int) string {
	return Cyan.Sprint(count)
}
