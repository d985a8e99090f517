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
	"path/filepath"
	"strings"
)

// nameDelimiter separates the tokens of measurement folder and file names.
const nameDelimiter = "_"

// Metadata is broadcast onto every record produced from one file.
type Metadata struct {
	EDX      string
	Image    string
	Analysis string
	Type     string
	Path     string
	Folder   string
}

// SplitName splits a folder or file name into its underscore-delimited tokens.
func SplitName(name string) []string {
	return strings.Split(name, nameDelimiter)
}

// Decompose derives the Image and Analysis labels from name, falling back to
// fallbackName when name is empty. The first two tokens form the image and
// the next two the analysis, each joined by a single space.
func Decompose(name, fallbackName string) (image, analysis string, err error) {
	if name == "" {
		name = fallbackName
	}
	return decomposeTokens(SplitName(name), name)
}

func decomposeTokens(tokens []string, name string) (string, string, error) {
	if len(tokens) < 4 {
		return "", "", fmt.Errorf("%w: %q has %d tokens, need at least 4", ErrMalformedName, name, len(tokens))
	}
	return tokens[0] + " " + tokens[1], tokens[2] + " " + tokens[3], nil
}

// folderName returns the base name of dir, or "" when dir has no usable
// base name (filesystem root or ".").
func folderName(dir string) string {
	base := filepath.Base(dir)
	switch base {
	case ".", string(filepath.Separator), "":
		return ""
	}
	return base
}
