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

// Package testing provides fixture builders for edxconcat tests.
//
// The helpers lay out export trees the way the acquisition software does:
// one folder per measurement holding quantification and linescan CSVs.
//
//	func TestScan(t *testing.T) {
//	    root := t.TempDir()
//	    dir := edxtest.MeasurementDir(t, root, "ImgA_1_AnalysisB_2_surface")
//	    edxtest.WriteQuantification(t, dir, "EDX1-123_quantification.csv", edxtest.SampleElements)
//	    // scan root...
//	}
package testing
