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

package testing

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// QuantificationHeader is the header of a quantification export.
var QuantificationHeader = []string{
	"Atomic number", "Element symbol", "Element name",
	"Atomic concentration percentage", "Weight concentration percentage", "Energy level",
}

// LinescanDescriptiveHeader is the leading header of a linescan export;
// position columns follow it.
var LinescanDescriptiveHeader = []string{
	"Atomic number", "Element symbol", "Element name", "Number of datapoints",
}

// SampleElements are three quantification rows (Fe, O, C).
var SampleElements = [][]string{
	{"26", "Fe", "Iron", "40.5", "70.1", "6.4"},
	{"8", "O", "Oxygen", "52.25", "25.9", "0.525"},
	{"6", "C", "Carbon", "7.25", "4", "0.277"},
}

// MeasurementDir creates root/name and returns its path.
func MeasurementDir(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create measurement dir: %v", err)
	}
	return dir
}

// WriteFile writes raw content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCSV writes header and rows to dir/name and returns the path.
func WriteCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		t.Fatalf("encode header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("encode rows: %v", err)
	}
	return WriteFile(t, dir, name, sb.String())
}

// WriteQuantification writes a quantification export with the standard header.
func WriteQuantification(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	return WriteCSV(t, dir, name, QuantificationHeader, rows)
}

// WriteLinescan writes a linescan export. Each row holds the four descriptive
// cells followed by one concentration per position.
func WriteLinescan(t *testing.T, dir, name string, positions []string, rows [][]string) string {
	t.Helper()
	header := append(append([]string{}, LinescanDescriptiveHeader...), positions...)
	return WriteCSV(t, dir, name, header, rows)
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
