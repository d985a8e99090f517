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

package storage

import (
	"context"
	"fmt"
)

// Backend is the interface that all dataset destinations implement.
type Backend interface {
	// Put stores data under name, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the content stored under name.
	Get(ctx context.Context, name string) ([]byte, error)
}

var (
	_ Backend = (*LocalSink)(nil)
	_ Backend = (*S3Sink)(nil)
)

// Open returns the backend serving dest: an S3Sink for "s3://" URLs and a
// LocalSink for everything else.
func Open(dest string, s3 S3Config) (Backend, error) {
	if !IsS3URL(dest) {
		return NewLocalSink(), nil
	}
	sink, err := NewS3Sink(s3)
	if err != nil {
		return nil, fmt.Errorf("open s3 backend for %s: %w", dest, err)
	}
	return sink, nil
}
