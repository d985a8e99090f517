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

package edx

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// table is a header-indexed CSV table held in memory.
type table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// readTable reads a whole CSV table. The first record is the header; a
// UTF-8 byte order mark and surrounding spaces are stripped from header
// names. Short rows are padded with empty cells. A row of empty cells is
// kept and yields missing values; only truly empty lines are skipped.
func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	t := &table{index: make(map[string]int)}
	if len(records) == 0 {
		return t, nil
	}

	t.header = make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		t.header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}

	for _, rec := range records[1:] {
		if len(rec) < len(t.header) {
			padded := make([]string, len(t.header))
			copy(padded, rec)
			rec = padded
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// empty reports whether the table has no header at all (zero-byte file).
func (t *table) empty() bool {
	return len(t.header) == 0
}

// column returns the index of the named header column.
func (t *table) column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return i, nil
}

// columns resolves several header names at once.
func (t *table) columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		c, err := t.column(name)
		if err != nil {
			return nil, err
		}
		idx[i] = c
	}
	return idx, nil
}

// parseNumber parses a numeric cell. Empty cells are missing values and
// parse to NaN.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return f, nil
}

// formatNumber renders a float in the shortest form that parses back to the
// same value. NaN is written as an empty cell.
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
