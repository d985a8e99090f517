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
	"fmt"
	"io"
	"slices"
)

// WriteRegular writes recs as CSV with the RegularColumns header.
func WriteRegular(w io.Writer, recs []ElementRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RegularColumns); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.EDX, r.Image, r.Analysis, r.Type, r.Path, r.Folder,
			formatNumber(r.AtomicNumber), r.ElementSymbol, r.ElementName,
			formatNumber(r.AtomicConcentration), formatNumber(r.WeightConcentration), formatNumber(r.EnergyLevel),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLinescan writes recs as CSV with the LinescanColumns header.
func WriteLinescan(w io.Writer, recs []PositionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LinescanColumns); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.EDX, formatNumber(r.PositionIndex), formatNumber(r.AtomicNumber), r.ElementSymbol, r.ElementName,
			formatNumber(r.Concentration), formatNumber(r.Datapoints),
			r.Image, r.Analysis, r.Type, r.Path, r.Folder,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRegular parses a file written by WriteRegular.
func ReadRegular(r io.Reader) ([]ElementRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	return regularFromTable(t)
}

// ReadLinescan parses a file written by WriteLinescan.
func ReadLinescan(r io.Reader) ([]PositionRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	return linescanFromTable(t)
}

// ReadDataset parses either output schema, chosen by the header row. The
// dataset that does not match is left empty.
func ReadDataset(r io.Reader) (Datasets, error) {
	t, err := readTable(r)
	if err != nil {
		return Datasets{}, err
	}
	switch {
	case slices.Equal(t.header, RegularColumns):
		recs, err := regularFromTable(t)
		return Datasets{Regular: recs}, err
	case slices.Equal(t.header, LinescanColumns):
		recs, err := linescanFromTable(t)
		return Datasets{Linescan: recs}, err
	default:
		return Datasets{}, fmt.Errorf("unrecognized dataset header %q", t.header)
	}
}

func regularFromTable(t *table) ([]ElementRecord, error) {
	if t.empty() {
		return nil, nil
	}
	idx, err := t.columns(RegularColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]ElementRecord, 0, len(t.rows))
	for i, row := range t.rows {
		nums, err := parseCells(row, idx[6], idx[9], idx[10], idx[11])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, ElementRecord{
			EDX:                 row[idx[0]],
			Image:               row[idx[1]],
			Analysis:            row[idx[2]],
			Type:                row[idx[3]],
			Path:                row[idx[4]],
			Folder:              row[idx[5]],
			AtomicNumber:        nums[0],
			ElementSymbol:       row[idx[7]],
			ElementName:         row[idx[8]],
			AtomicConcentration: nums[1],
			WeightConcentration: nums[2],
			EnergyLevel:         nums[3],
		})
	}
	return out, nil
}

func linescanFromTable(t *table) ([]PositionRecord, error) {
	if t.empty() {
		return nil, nil
	}
	idx, err := t.columns(LinescanColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]PositionRecord, 0, len(t.rows))
	for i, row := range t.rows {
		nums, err := parseCells(row, idx[1], idx[2], idx[5], idx[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, PositionRecord{
			EDX:           row[idx[0]],
			PositionIndex: nums[0],
			AtomicNumber:  nums[1],
			ElementSymbol: row[idx[3]],
			ElementName:   row[idx[4]],
			Concentration: nums[2],
			Datapoints:    nums[3],
			Image:         row[idx[7]],
			Analysis:      row[idx[8]],
			Type:          row[idx[9]],
			Path:          row[idx[10]],
			Folder:        row[idx[11]],
		})
	}
	return out, nil
}

func parseCells(row []string, cols ...int) ([]float64, error) {
	nums := make([]float64, len(cols))
	for i, c := range cols {
		v, err := parseNumber(row[c])
		if err != nil {
			return nil, err
		}
		nums[i] = v
	}
	return nums, nil
}
