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
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Dataset names used in logs and metrics.
const (
	DatasetRegular  = "regular"
	DatasetLinescan = "linescan"
)

// Scanner walks an export tree and accumulates the regular and linescan
// datasets. A Scanner holds no state between scans and may be reused.
type Scanner struct {
	logger *slog.Logger

	// OnFile, when set, is called once for every regular file visited.
	OnFile func(path string)
}

// NewScanner creates a scanner. A nil logger uses slog.Default().
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// Result summarizes one scan.
type Result struct {
	// RunID uniquely identifies this scan.
	RunID string `json:"run_id"`

	// Root is the scanned directory as given by the caller.
	Root string `json:"root"`

	// Regular and Linescan are the accumulated datasets in traversal order.
	Regular  []ElementRecord  `json:"-"`
	Linescan []PositionRecord `json:"-"`

	// FilesVisited counts every regular file under Root.
	FilesVisited int `json:"files_visited"`

	// RegularFiles and LinescanFiles count files that contributed rows or an
	// empty table.
	RegularFiles  int `json:"regular_files"`
	LinescanFiles int `json:"linescan_files"`

	// IgnoredFiles counts files that are not quantification or linescan CSVs.
	IgnoredFiles int `json:"ignored_files"`

	// MissingIdentifier lists processed files whose path holds no
	// measurement identifier. Their records carry an empty EDX field.
	MissingIdentifier []string `json:"missing_identifier,omitempty"`

	// Skipped lists candidate files that contributed nothing, with reasons.
	Skipped []SkippedFile `json:"skipped,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// Datasets returns the two accumulated datasets.
func (r *Result) Datasets() Datasets {
	return Datasets{Regular: r.Regular, Linescan: r.Linescan}
}

// SkipCounts returns the number of skipped files per reason.
func (r *Result) SkipCounts() map[string]int {
	counts := make(map[string]int)
	for _, s := range r.Skipped {
		counts[s.Reason]++
	}
	return counts
}

// Scan walks root in lexical order and returns freshly built datasets. Files
// are processed one at a time; a file that fails is recorded in
// Result.Skipped and the walk continues. Scan fails only when root is not a
// readable directory or ctx is cancelled, in which case no partial datasets
// are returned.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Root:      root,
		StartedAt: time.Now(),
	}
	s.logger.Info("scan.start", "run_id", res.RunID, "root", root)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("scan.walk.error", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		res.FilesVisited++
		if s.OnFile != nil {
			s.OnFile(path)
		}
		s.processFile(res, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	res.Duration = time.Since(res.StartedAt)
	recordScan(res.Duration.Seconds())
	recordRecords(DatasetRegular, len(res.Regular))
	recordRecords(DatasetLinescan, len(res.Linescan))

	s.logger.Info("scan.complete",
		"run_id", res.RunID,
		"files", res.FilesVisited,
		"regular_rows", len(res.Regular),
		"linescan_rows", len(res.Linescan),
		"skipped", len(res.Skipped),
		"duration", res.Duration,
	)
	return res, nil
}

// processFile classifies one file and appends its records to res.
func (s *Scanner) processFile(res *Result, path string) {
	fileName := filepath.Base(path)
	folder := folderName(filepath.Dir(path))

	tokens := SplitName(fileName)
	if folder != "" {
		tokens = SplitName(folder)
	}

	class := Classify(fileName, tokens)
	recordFile(class)
	if class == ClassIgnored {
		res.IgnoredFiles++
		s.logger.Debug("scan.file.ignored", "path", path)
		return
	}
	if class == ClassLinescanUnknown {
		s.skip(res, path, fmt.Errorf("%s: %w", fileName, ErrUnclassifiedLinescan))
		return
	}

	image, analysis, err := Decompose(folder, fileName)
	if err != nil {
		s.skip(res, path, err)
		return
	}

	meta := Metadata{
		Image:    image,
		Analysis: analysis,
		Path:     path,
		Folder:   folder,
	}
	if id, ok := ExtractIdentifier(path); ok {
		meta.EDX = id
	} else {
		res.MissingIdentifier = append(res.MissingIdentifier, path)
		recordIdentifierAbsent()
		s.logger.Warn("scan.identifier.absent", "path", path, "err", ErrIdentifierAbsent)
	}

	switch class {
	case ClassRegular:
		meta.Type = tokens[len(tokens)-1]
		recs, err := ExtractRegularFile(path, meta)
		if err != nil {
			s.skip(res, path, err)
			return
		}
		res.RegularFiles++
		res.Regular = append(res.Regular, recs...)
		s.logger.Debug("scan.file.regular", "path", path, "edx", meta.EDX, "rows", len(recs))
	default:
		meta.Type = class.String()
		recs, err := ReshapeLinescanFile(path, meta)
		if err != nil {
			s.skip(res, path, err)
			return
		}
		res.LinescanFiles++
		res.Linescan = append(res.Linescan, recs...)
		s.logger.Debug("scan.file.linescan", "path", path, "edx", meta.EDX, "type", meta.Type, "rows", len(recs))
	}
}

func (s *Scanner) skip(res *Result, path string, err error) {
	reason := skipReason(err)
	res.Skipped = append(res.Skipped, SkippedFile{Path: path, Reason: reason, Err: err})
	recordSkip(reason)
	s.logger.Warn("scan.file.skip", "path", path, "reason", reason, "err", err)
}
