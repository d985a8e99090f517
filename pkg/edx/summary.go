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

// SummaryEntry is one distinct measurement of a dataset.
type SummaryEntry struct {
	Image    string `json:"image"`
	Analysis string `json:"analysis"`
	Type     string `json:"type"`
}

// SummarizeRegular returns the distinct (Image, Analysis, Type) triples of
// recs in first-seen order.
func SummarizeRegular(recs []ElementRecord) []SummaryEntry {
	return summarize(recs, func(r ElementRecord) SummaryEntry {
		return SummaryEntry{Image: r.Image, Analysis: r.Analysis, Type: r.Type}
	})
}

// SummarizeLinescan is SummarizeRegular for linescan records.
func SummarizeLinescan(recs []PositionRecord) []SummaryEntry {
	return summarize(recs, func(r PositionRecord) SummaryEntry {
		return SummaryEntry{Image: r.Image, Analysis: r.Analysis, Type: r.Type}
	})
}

func summarize[T any](recs []T, key func(T) SummaryEntry) []SummaryEntry {
	seen := make(map[SummaryEntry]bool)
	var out []SummaryEntry
	for _, r := range recs {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
