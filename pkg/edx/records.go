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

// Source column names of the export tables.
const (
	ColAtomicNumber        = "Atomic number"
	ColElementSymbol       = "Element symbol"
	ColElementName         = "Element name"
	ColAtomicConcentration = "Atomic concentration percentage"
	ColWeightConcentration = "Weight concentration percentage"
	ColEnergyLevel         = "Energy level"
	ColDatapoints          = "Number of datapoints"
)

// Measurement type labels assigned to linescan files.
const (
	TypeLinescanAtomic = "linescan_atomic"
	TypeLinescanWeight = "linescan_weight"
)

// RegularColumns is the header of the regular output dataset.
var RegularColumns = []string{
	"EDX", "Image", "Analysis", "Type", "Path", "Folder",
	"Atomic_number", "Element_symbol", "Element_name",
	"Atomic_concentration", "Weight_concentration", "Energy_level",
}

// LinescanColumns is the header of the linescan output dataset.
var LinescanColumns = []string{
	"EDX", "Position_Index", "Atomic_number", "Element_symbol", "Element_name",
	"Concentration", "Datapoints",
	"Image", "Analysis", "Type", "Path", "Folder",
}

// ElementRecord is one element row of a quantification table. Missing numeric
// cells are NaN.
type ElementRecord struct {
	EDX                 string
	Image               string
	Analysis            string
	Type                string
	Path                string
	Folder              string
	AtomicNumber        float64
	ElementSymbol       string
	ElementName         string
	AtomicConcentration float64
	WeightConcentration float64
	EnergyLevel         float64
}

// PositionRecord is one (element, position) observation of a linescan.
type PositionRecord struct {
	EDX           string
	PositionIndex float64
	AtomicNumber  float64
	ElementSymbol string
	ElementName   string
	Concentration float64
	Datapoints    float64
	Image         string
	Analysis      string
	Type          string
	Path          string
	Folder        string
}

// Datasets holds the two accumulated outputs of a scan.
type Datasets struct {
	Regular  []ElementRecord
	Linescan []PositionRecord
}

// Empty reports whether both datasets have no rows.
func (d Datasets) Empty() bool {
	return len(d.Regular) == 0 && len(d.Linescan) == 0
}
