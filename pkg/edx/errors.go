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
)

// Per-file failure conditions. Each is wrapped with file context before it is
// returned, so callers match them with errors.Is.
var (
	// ErrMalformedName means a folder or file name split into fewer than
	// four underscore-delimited tokens.
	ErrMalformedName = errors.New("malformed measurement name")

	// ErrMissingColumn means a required header column is absent.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidNumber means a numeric cell could not be parsed.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidPosition means a linescan position header is not numeric.
	ErrInvalidPosition = errors.New("invalid position label")

	// ErrUnclassifiedLinescan means a linescan file names neither "atomic"
	// nor "weight".
	ErrUnclassifiedLinescan = errors.New("linescan file is neither atomic nor weight")

	// ErrRootNotDirectory means the scan root exists but is not a directory.
	ErrRootNotDirectory = errors.New("scan root is not a directory")

	// ErrIdentifierAbsent means no measurement identifier occurs in the path.
	// The scanner tolerates it and emits records with an empty identifier.
	ErrIdentifierAbsent = errors.New("measurement identifier absent")
)

// Skip reasons reported in SkippedFile.Reason.
const (
	ReasonMalformedName        = "malformed_name"
	ReasonMissingColumn        = "missing_column"
	ReasonInvalidNumber        = "invalid_number"
	ReasonInvalidPosition      = "invalid_position"
	ReasonUnclassifiedLinescan = "unclassified_linescan"
	ReasonReadError            = "read_error"
)

// SkippedFile records a candidate file that contributed no rows.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Error returns the underlying error text, or the reason when there is none.
func (s SkippedFile) Error() string {
	if s.Err != nil {
		return s.Err.Error()
	}
	return s.Reason
}

// skipReason maps a per-file error to its report reason.
func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedName):
		return ReasonMalformedName
	case errors.Is(err, ErrMissingColumn):
		return ReasonMissingColumn
	case errors.Is(err, ErrInvalidPosition):
		return ReasonInvalidPosition
	case errors.Is(err, ErrInvalidNumber):
		return ReasonInvalidNumber
	case errors.Is(err, ErrUnclassifiedLinescan):
		return ReasonUnclassifiedLinescan
	default:
		return ReasonReadError
	}
}
