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

import "path/filepath"

// Measurement identifiers look like EDX1-123: four alphanumeric characters,
// a hyphen and three digits.
const (
	identifierPrefixLen = 4
	identifierDigits    = 3
	identifierLen       = identifierPrefixLen + 1 + identifierDigits
)

// ExtractIdentifier returns the measurement identifier embedded in path. The
// file name is searched first; only when it holds none is the first
// identifier anywhere in the path used, so a directory such as "Site-001"
// never shadows the file's own identifier. The second result is false when
// the path contains none.
func ExtractIdentifier(path string) (string, bool) {
	if id, ok := findIdentifier(filepath.Base(path)); ok {
		return id, true
	}
	return findIdentifier(path)
}

func findIdentifier(path string) (string, bool) {
	for i := 0; i+identifierLen <= len(path); i++ {
		if matchIdentifierAt(path, i) {
			return path[i : i+identifierLen], true
		}
	}
	return "", false
}

func matchIdentifierAt(s string, i int) bool {
	for j := 0; j < identifierPrefixLen; j++ {
		if !isAlnum(s[i+j]) {
			return false
		}
	}
	if s[i+identifierPrefixLen] != '-' {
		return false
	}
	for j := identifierPrefixLen + 1; j < identifierLen; j++ {
		if !isDigit(s[i+j]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
