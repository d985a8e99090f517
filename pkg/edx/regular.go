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

// regularRequired lists the columns a quantification table must carry.
var regularRequired = []string{
	ColAtomicNumber, ColElementSymbol, ColElementName,
	ColAtomicConcentration, ColWeightConcentration, ColEnergyLevel,
}

// ExtractRegular reads a quantification table and returns one record per
// element row with meta copied onto it. A table lacking any required column
// fails with ErrMissingColumn.
func ExtractRegular(r io.Reader, meta Metadata) ([]ElementRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if t.empty() {
		return nil, nil
	}

	idx, err := t.columns(regularRequired...)
	if err != nil {
		return nil, err
	}

	out := make([]ElementRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var nums [4]float64
		for j, col := range []int{idx[0], idx[3], idx[4], idx[5]} {
			if nums[j], err = parseNumber(row[col]); err != nil {
				return nil, fmt.Errorf("row %d %s: %w", i+1, t.header[col], err)
			}
		}
		out = append(out, ElementRecord{
			EDX:                 meta.EDX,
			Image:               meta.Image,
			Analysis:            meta.Analysis,
			Type:                meta.Type,
			Path:                meta.Path,
			Folder:              meta.Folder,
			AtomicNumber:        nums[0],
			ElementSymbol:       row[idx[1]],
			ElementName:         row[idx[2]],
			AtomicConcentration: nums[1],
			WeightConcentration: nums[2],
			EnergyLevel:         nums[3],
		})
	}
	return out, nil
}

// ExtractRegularFile opens path and extracts it with ExtractRegular.
func ExtractRegularFile(path string, meta Metadata) ([]ElementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ExtractRegular(f, meta)
}
