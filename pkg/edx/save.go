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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// linescanSuffix is inserted before the destination extension to name the
// linescan output.
const linescanSuffix = "_linescan"

// Sink stores an encoded dataset under a destination name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// SaveError reports a dataset that could not be written.
type SaveError struct {
	Dataset string
	Dest    string
	Err     error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s dataset to %s: %v", e.Dataset, e.Dest, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// LinescanPath returns the sibling destination of the linescan dataset:
// "out/edx.csv" becomes "out/edx_linescan.csv".
func LinescanPath(dest string) string {
	ext := filepath.Ext(dest)
	return strings.TrimSuffix(dest, ext) + linescanSuffix + ext
}

// Save writes the regular dataset to dest and the linescan dataset to
// LinescanPath(dest). Empty datasets are not written. The two writes are
// independent: a failure of one does not prevent the other, and both errors
// are returned joined as *SaveError values. A nil logger uses slog.Default().
func Save(ctx context.Context, logger *slog.Logger, sink Sink, d Datasets, dest string) error {
	if logger == nil {
		logger = slog.Default()
	}
	var errs []error

	if len(d.Regular) > 0 {
		err := put(ctx, sink, dest, func(buf *bytes.Buffer) error { return WriteRegular(buf, d.Regular) })
		recordSave(DatasetRegular, err)
		if err != nil {
			errs = append(errs, &SaveError{Dataset: DatasetRegular, Dest: dest, Err: err})
		} else {
			logger.Info("save.write", "dataset", DatasetRegular, "dest", dest, "rows", len(d.Regular))
		}
	}

	if len(d.Linescan) > 0 {
		lsDest := LinescanPath(dest)
		err := put(ctx, sink, lsDest, func(buf *bytes.Buffer) error { return WriteLinescan(buf, d.Linescan) })
		recordSave(DatasetLinescan, err)
		if err != nil {
			errs = append(errs, &SaveError{Dataset: DatasetLinescan, Dest: lsDest, Err: err})
		} else {
			logger.Info("save.write", "dataset", DatasetLinescan, "dest", lsDest, "rows", len(d.Linescan))
		}
	}

	return errors.Join(errs...)
}

func put(ctx context.Context, sink Sink, name string, encode func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return sink.Put(ctx, name, buf.Bytes())
}
