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
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var regularMeta = Metadata{
	EDX:      "EDX1-123",
	Image:    "ImgA 1",
	Analysis: "AnalysisB 2",
	Type:     "surface",
	Path:     "/data/ImgA_1_AnalysisB_2_surface/EDX1-123_quantification.csv",
	Folder:   "ImgA_1_AnalysisB_2_surface",
}

const quantHeader = "Atomic number,Element symbol,Element name,Atomic concentration percentage,Weight concentration percentage,Energy level\n"

func TestExtractRegular(t *testing.T) {
	in := quantHeader +
		"26,Fe,Iron,40.5,70.1,6.4\n" +
		"8,O,Oxygen,52.25,25.9,0.525\n" +
		"6,C,Carbon,7.25,4,0.277\n"

	recs, err := ExtractRegular(strings.NewReader(in), regularMeta)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, ElementRecord{
		EDX:                 "EDX1-123",
		Image:               "ImgA 1",
		Analysis:            "AnalysisB 2",
		Type:                "surface",
		Path:                regularMeta.Path,
		Folder:              regularMeta.Folder,
		AtomicNumber:        26,
		ElementSymbol:       "Fe",
		ElementName:         "Iron",
		AtomicConcentration: 40.5,
		WeightConcentration: 70.1,
		EnergyLevel:         6.4,
	}, recs[0])
	assert.Equal(t, []string{"Fe", "O", "C"}, []string{recs[0].ElementSymbol, recs[1].ElementSymbol, recs[2].ElementSymbol})
}

func TestExtractRegular_ExtraColumnsAndOrder(t *testing.T) {
	in := "Energy level,Line,Element name,Element symbol,Atomic number,Weight concentration percentage,Atomic concentration percentage\n" +
		"6.4,K,Iron,Fe,26,70.1,40.5\n"

	recs, err := ExtractRegular(strings.NewReader(in), regularMeta)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 26.0, recs[0].AtomicNumber)
	assert.Equal(t, 40.5, recs[0].AtomicConcentration)
	assert.Equal(t, 70.1, recs[0].WeightConcentration)
	assert.Equal(t, 6.4, recs[0].EnergyLevel)
}

func TestExtractRegular_BOMAndPadding(t *testing.T) {
	in := "\ufeff Atomic number , Element symbol,Element name,Atomic concentration percentage,Weight concentration percentage,Energy level\n" +
		"26,Fe,Iron,40.5,70.1\n" +
		",,,,,\n"

	recs, err := ExtractRegular(strings.NewReader(in), regularMeta)
	require.NoError(t, err)
	require.Len(t, recs, 2, "a row of empty cells is still a row")
	assert.Equal(t, 26.0, recs[0].AtomicNumber)
	assert.True(t, math.IsNaN(recs[0].EnergyLevel), "padded cell is missing")

	empty := recs[1]
	assert.Empty(t, empty.ElementSymbol)
	assert.True(t, math.IsNaN(empty.AtomicNumber))
	assert.True(t, math.IsNaN(empty.AtomicConcentration))
	assert.Equal(t, regularMeta.EDX, empty.EDX)
}

func TestExtractRegular_SkipsOnlyEmptyLines(t *testing.T) {
	in := quantHeader + "26,Fe,Iron,40.5,70.1,6.4\n\n\n8,O,Oxygen,52.25,25.9,0.525\n"
	recs, err := ExtractRegular(strings.NewReader(in), regularMeta)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestExtractRegular_MissingColumn(t *testing.T) {
	for _, drop := range regularRequired {
		t.Run(drop, func(t *testing.T) {
			var cols []string
			for _, c := range regularRequired {
				if c != drop {
					cols = append(cols, c)
				}
			}
			in := strings.Join(cols, ",") + "\n1,2,3,4,5\n"

			_, err := ExtractRegular(strings.NewReader(in), regularMeta)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)
			assert.Contains(t, err.Error(), drop)
		})
	}
}

func TestExtractRegular_HeaderOnly(t *testing.T) {
	recs, err := ExtractRegular(strings.NewReader(quantHeader), regularMeta)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestExtractRegular_InvalidNumber(t *testing.T) {
	in := quantHeader + "26,Fe,Iron,forty,70.1,6.4\n"
	_, err := ExtractRegular(strings.NewReader(in), regularMeta)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNumber), "got %v", err)
}
