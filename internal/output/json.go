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

// Package output renders CLI command results either as indented JSON
// (--json) or as human-readable text.
//
//	p := output.New(os.Stdout, globals.JSON)
//	err := p.Emit(report, func(w io.Writer) {
//	    fmt.Fprintf(w, "%d rows\n", report.Rows)
//	})
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Printer writes results in the mode chosen on the command line.
type Printer struct {
	w        io.Writer
	jsonMode bool
}

// New creates a printer writing to w.
func New(w io.Writer, jsonMode bool) *Printer {
	return &Printer{w: w, jsonMode: jsonMode}
}

// JSONMode reports whether the printer emits JSON.
func (p *Printer) JSONMode() bool {
	return p.jsonMode
}

// Emit writes v as JSON in JSON mode, and otherwise calls text.
func (p *Printer) Emit(v any, text func(w io.Writer)) error {
	if p.jsonMode {
		return JSONTo(p.w, v)
	}
	text(p.w)
	return nil
}

// JSONTo writes data to w as JSON with two-space indentation.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}
