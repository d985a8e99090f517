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

// Package storage provides the destinations that EDX datasets are saved to.
//
// Two sinks are available:
//
//   - LocalSink writes files on the local filesystem. Each write goes to a
//     temporary file in the destination directory which is synced and then
//     renamed over the target, so readers never observe a half-written file.
//   - S3Sink writes objects to an S3-compatible store (AWS S3, MinIO) using
//     minio-go. Destinations are "s3://bucket/key" URLs; a bare key uses the
//     configured default bucket.
//
// Both implement Put and Get over whole byte slices, which is all the
// dataset persister needs.
package storage
