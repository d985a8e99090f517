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
	"strings"
)

const (
	csvExtension         = ".csv"
	quantificationSuffix = "quantification.csv"
	linescanMarker       = "linescan"
)

// FileClass is the outcome of classifying a candidate file.
type FileClass int

const (
	ClassIgnored FileClass = iota
	ClassRegular
	ClassLinescanAtomic
	ClassLinescanWeight
	ClassLinescanUnknown
)

// String returns the class label used in logs and metrics.
func (c FileClass) String() string {
	switch c {
	case ClassRegular:
		return "regular"
	case ClassLinescanAtomic:
		return TypeLinescanAtomic
	case ClassLinescanWeight:
		return TypeLinescanWeight
	case ClassLinescanUnknown:
		return "linescan_unknown"
	default:
		return "ignored"
	}
}

// IsLinescan reports whether c is any of the linescan classes.
func (c FileClass) IsLinescan() bool {
	return c == ClassLinescanAtomic || c == ClassLinescanWeight || c == ClassLinescanUnknown
}

// Classify decides how a file is ingested from its base name and the tokens
// of its folder name. A file is a linescan when its name (in any case) or
// any folder token (exact case) contains "linescan"; the file name then
// selects atomic or weight. Otherwise only names ending in "quantification.csv" are regular
// data. Everything else, including non-CSV files, is ignored.
func Classify(fileName string, folderTokens []string) FileClass {
	if !strings.HasSuffix(fileName, csvExtension) {
		return ClassIgnored
	}

	lower := strings.ToLower(fileName)
	if strings.Contains(lower, linescanMarker) || anyTokenContains(folderTokens, linescanMarker) {
		switch {
		case strings.Contains(lower, "atomic"):
			return ClassLinescanAtomic
		case strings.Contains(lower, "weight"):
			return ClassLinescanWeight
		default:
			return ClassLinescanUnknown
		}
	}

	if strings.HasSuffix(fileName, quantificationSuffix) {
		return ClassRegular
	}
	return ClassIgnored
}

func anyTokenContains(tokens []string, marker string) bool {
	for _, tok := range tokens {
		if strings.Contains(tok, marker) {
			return true
		}
	}
	return false
}
