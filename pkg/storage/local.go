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
	"os"
	"path/filepath"
)

// LocalSink writes datasets to the local filesystem.
type LocalSink struct {
	permFile os.FileMode
	permDir  os.FileMode
}

// NewLocalSink creates a sink writing files 0644 and directories 0755.
func NewLocalSink() *LocalSink {
	return &LocalSink{permFile: 0o644, permDir: 0o755}
}

// Put atomically replaces the file at name with data, creating parent
// directories as needed.
func (s *LocalSink) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("destination path is empty")
	}

	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, s.permDir); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".edxconcat-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp: %w", err)
	}
	_ = os.Chmod(tmpPath, s.permFile)

	if err := os.Rename(tmpPath, name); err != nil {
		_ = os.Remove(tmpPath) // rename already failed
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Get reads the whole file at name.
func (s *LocalSink) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}
