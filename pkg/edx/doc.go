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

// Package edx ingests directory trees of EDX spectroscopy exports and
// normalizes them into two long-format datasets.
//
// An export tree holds one folder per measurement, named
// <image>_<n>_<analysis>_<n>_<type>, containing CSV tables written by the
// acquisition software. Two table shapes are understood:
//
//   - Quantification tables (file name ending in "quantification.csv"), one row
//     per detected element with atomic/weight concentration and energy level.
//   - Linescan tables (file or folder name containing "linescan"), one row per
//     element and one column per scanned position.
//
// # Pipeline Overview
//
//  1. Discovery: walk the root in lexical order and keep *.csv files
//  2. Classification: linescan (atomic or weight), quantification, or ignored
//  3. Attribution: pull the measurement identifier (e.g. EDX1-123) out of the
//     path and decompose the folder name into Image/Analysis labels
//  4. Extraction: quantification rows become ElementRecords; linescan tables
//     are reshaped position-major into PositionRecords
//  5. Persistence: Save writes the regular dataset to the destination and the
//     linescan dataset next to it with a "_linescan" suffix
//
// A file that cannot be processed never aborts the scan. It is reported in
// Result.Skipped with a reason and contributes no rows.
//
// # Quick Start
//
//	scanner := edx.NewScanner(logger)
//	result, err := scanner.Scan(ctx, "/data/exports")
//	if err != nil {
//	    return err
//	}
//	for _, s := range result.Skipped {
//	    logger.Warn("skipped", "path", s.Path, "reason", s.Reason)
//	}
//	err = edx.Save(ctx, logger, storage.NewLocalSink(), result.Datasets(), "/data/edx.csv")
//
// # Metrics
//
// Scanner records Prometheus counters (edx_scan_files_total,
// edx_scan_skipped_total, edx_scan_records_total, ...) in the default
// registry so a caller can expose them with promhttp.
package edx
