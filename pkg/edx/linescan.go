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
	"fmt"
	"io"
	"os"
)

// linescanDescriptive lists the non-position columns of a linescan table.
var linescanDescriptive = []string{ColAtomicNumber, ColElementSymbol, ColElementName, ColDatapoints}

// ReshapeLinescan reads a wide linescan table (one row per element, one
// column per position) and returns it in long format. Records are ordered
// position-major: every element at the first position column, then every
// element at the next, preserving the input column and row order. meta is
// copied onto every record.
func ReshapeLinescan(r io.Reader, meta Metadata) ([]PositionRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if t.empty() {
		return nil, nil
	}

	idx, err := t.columns(linescanDescriptive...)
	if err != nil {
		return nil, err
	}
	atomicCol, symbolCol, nameCol, pointsCol := idx[0], idx[1], idx[2], idx[3]

	positions, err := positionColumns(t)
	if err != nil {
		return nil, err
	}

	// Per-element numeric fields are shared by every position.
	atomic := make([]float64, len(t.rows))
	points := make([]float64, len(t.rows))
	for i, row := range t.rows {
		if atomic[i], err = parseNumber(row[atomicCol]); err != nil {
			return nil, fmt.Errorf("row %d %s: %w", i+1, ColAtomicNumber, err)
		}
		if points[i], err = parseNumber(row[pointsCol]); err != nil {
			return nil, fmt.Errorf("row %d %s: %w", i+1, ColDatapoints, err)
		}
	}

	out := make([]PositionRecord, 0, len(positions)*len(t.rows))
	for _, pos := range positions {
		for i, row := range t.rows {
			conc, err := parseNumber(row[pos.col])
			if err != nil {
				return nil, fmt.Errorf("row %d position %q: %w", i+1, t.header[pos.col], err)
			}
			out = append(out, PositionRecord{
				EDX:           meta.EDX,
				PositionIndex: pos.value,
				AtomicNumber:  atomic[i],
				ElementSymbol: row[symbolCol],
				ElementName:   row[nameCol],
				Concentration: conc,
				Datapoints:    points[i],
				Image:         meta.Image,
				Analysis:      meta.Analysis,
				Type:          meta.Type,
				Path:          meta.Path,
				Folder:        meta.Folder,
			})
		}
	}
	return out, nil
}

// ReshapeLinescanFile opens path and reshapes it with ReshapeLinescan.
func ReshapeLinescanFile(path string, meta Metadata) ([]PositionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReshapeLinescan(f, meta)
}

type positionColumn struct {
	col   int
	value float64
}

// positionColumns returns every non-descriptive column in header order with
// its label parsed as a position.
func positionColumns(t *table) ([]positionColumn, error) {
	descriptive := make(map[string]bool, len(linescanDescriptive))
	for _, name := range linescanDescriptive {
		descriptive[name] = true
	}

	var positions []positionColumn
	for i, h := range t.header {
		if descriptive[h] {
			continue
		}
		v, err := parseNumber(h)
		if err != nil || h == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, h)
		}
		positions = append(positions, positionColumn{col: i, value: v})
	}
	return positions, nil
}
