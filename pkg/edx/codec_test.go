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
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegular() []ElementRecord {
	return []ElementRecord{
		{
			EDX: "EDX1-123", Image: "ImgA 1", Analysis: "AnalysisB 2", Type: "surface",
			Path: "/data/ImgA_1_AnalysisB_2_surface/EDX1-123_quantification.csv", Folder: "ImgA_1_AnalysisB_2_surface",
			AtomicNumber: 26, ElementSymbol: "Fe", ElementName: "Iron",
			AtomicConcentration: 40.5, WeightConcentration: 70.1, EnergyLevel: 6.4,
		},
		{
			EDX: "EDX1-123", Image: "ImgA 1", Analysis: "AnalysisB 2", Type: "surface",
			Path: "/data/ImgA_1_AnalysisB_2_surface/EDX1-123_quantification.csv", Folder: "ImgA_1_AnalysisB_2_surface",
			AtomicNumber: 8, ElementSymbol: "O", ElementName: "Oxygen, bound",
			AtomicConcentration: 52.25, WeightConcentration: 25.9, EnergyLevel: 0.525,
		},
	}
}

func sampleLinescan() []PositionRecord {
	return []PositionRecord{
		{
			EDX: "EDX1-045", PositionIndex: 0, AtomicNumber: 26, ElementSymbol: "Fe", ElementName: "Iron",
			Concentration: 10, Datapoints: 120, Image: "ImgA 1", Analysis: "Line 3", Type: TypeLinescanAtomic,
			Path: "/data/ImgA_1_Line_3_scan/EDX1-045_atomic_linescan.csv", Folder: "ImgA_1_Line_3_scan",
		},
		{
			EDX: "EDX1-045", PositionIndex: 0.25, AtomicNumber: 26, ElementSymbol: "Fe", ElementName: "Iron",
			Concentration: 20, Datapoints: 120, Image: "ImgA 1", Analysis: "Line 3", Type: TypeLinescanAtomic,
			Path: "/data/ImgA_1_Line_3_scan/EDX1-045_atomic_linescan.csv", Folder: "ImgA_1_Line_3_scan",
		},
	}
}

func TestWriteRegular_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRegular(&buf, nil))
	assert.Equal(t,
		"EDX,Image,Analysis,Type,Path,Folder,Atomic_number,Element_symbol,Element_name,Atomic_concentration,Weight_concentration,Energy_level\n",
		buf.String())
}

func TestWriteLinescan_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLinescan(&buf, nil))
	assert.Equal(t,
		"EDX,Position_Index,Atomic_number,Element_symbol,Element_name,Concentration,Datapoints,Image,Analysis,Type,Path,Folder\n",
		buf.String())
}

func TestRegularRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRegular(&buf, sampleRegular()))

	got, err := ReadRegular(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleRegular(), got)
}

func TestLinescanRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLinescan(&buf, sampleLinescan()))

	got, err := ReadLinescan(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleLinescan(), got)
}

func TestWriteRegular_NaNIsEmptyCell(t *testing.T) {
	rec := sampleRegular()[0]
	rec.EnergyLevel = math.NaN()

	var buf bytes.Buffer
	require.NoError(t, WriteRegular(&buf, []ElementRecord{rec}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ",70.1,"), "got %q", lines[1])

	got, err := ReadRegular(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, math.IsNaN(got[0].EnergyLevel))
}

func TestReadDataset(t *testing.T) {
	t.Run("regular", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRegular(&buf, sampleRegular()))
		d, err := ReadDataset(&buf)
		require.NoError(t, err)
		assert.Len(t, d.Regular, 2)
		assert.Empty(t, d.Linescan)
	})

	t.Run("linescan", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteLinescan(&buf, sampleLinescan()))
		d, err := ReadDataset(&buf)
		require.NoError(t, err)
		assert.Empty(t, d.Regular)
		assert.Len(t, d.Linescan, 2)
	})

	t.Run("unknown header", func(t *testing.T) {
		_, err := ReadDataset(strings.NewReader(quantHeader))
		assert.ErrorContains(t, err, "unrecognized dataset header")
	})
}
