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

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/edxconcat/internal/errors"
	"github.com/kraklabs/edxconcat/internal/output"
	"github.com/kraklabs/edxconcat/internal/ui"
	"github.com/kraklabs/edxconcat/pkg/edx"
	"github.com/kraklabs/edxconcat/pkg/storage"
)

// SummaryReport lists the distinct measurements of a saved dataset.
type SummaryReport struct {
	Path         string             `json:"path"`
	Dataset      string             `json:"dataset"`
	Rows         int                `json:"rows"`
	Measurements []edx.SummaryEntry `json:"measurements"`
}

// runSummary executes the 'summary' CLI command, which reads back a dataset
// written by 'scan' and lists its (Image, Analysis, Type) combinations.
//
// Flags:
//   - --json: Output as JSON
func runSummary(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: edxconcat summary <dataset.csv> [options]

Lists the measurements contained in a regular or linescan dataset. The
dataset kind is detected from its header. s3://bucket/key paths are read
from the configured object store.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitInput)
	}
	globals.JSON = *jsonOutput

	if fs.NArg() != 1 {
		errors.FatalError(errors.NewInputError(
			"Missing dataset path",
			"summary takes exactly one <dataset.csv> argument",
			"Run: edxconcat summary <dataset.csv>",
		), globals.JSON)
	}

	cfg, err := LoadConfig(globals.ConfigPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	report, err := executeSummary(context.Background(), cfg, fs.Arg(0))
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	printer := output.New(os.Stdout, globals.JSON)
	if err := printer.Emit(report, func(io.Writer) { printSummary(report) }); err != nil {
		errors.FatalError(errors.NewInternalError("Cannot write summary", err.Error(), "", err), false)
	}
}

func executeSummary(ctx context.Context, cfg *Config, path string) (*SummaryReport, error) {
	backend, err := storage.Open(path, cfg.Storage.S3)
	if err != nil {
		return nil, errors.NewConfigError("Cannot open dataset location", err.Error(), "Set storage.s3 in "+defaultConfigFile+" or the EDXCONCAT_S3_* variables", err)
	}
	data, err := backend.Get(ctx, path)
	if err != nil {
		return nil, errors.FromPathError("Cannot read dataset", path, err)
	}

	d, err := edx.ReadDataset(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewInputError("Not an edxconcat dataset", err.Error(), "Pass a file written by 'edxconcat scan -o'")
	}

	report := &SummaryReport{Path: path}
	switch {
	case len(d.Linescan) > 0:
		report.Dataset = edx.DatasetLinescan
		report.Rows = len(d.Linescan)
		report.Measurements = edx.SummarizeLinescan(d.Linescan)
	default:
		report.Dataset = edx.DatasetRegular
		report.Rows = len(d.Regular)
		report.Measurements = edx.SummarizeRegular(d.Regular)
	}
	if report.Measurements == nil {
		report.Measurements = []edx.SummaryEntry{}
	}
	return report, nil
}

func printSummary(r *SummaryReport) {
	ui.Header(fmt.Sprintf("%s dataset: %s", strings.ToUpper(r.Dataset[:1])+r.Dataset[1:], r.Path))
	ui.Field("Rows:", ui.CountText(r.Rows))
	ui.Field("Measurements:", ui.CountText(len(r.Measurements)))
	fmt.Fprintln(ui.Out)

	for _, m := range r.Measurements {
		fmt.Fprintf(ui.Out, "  %-20s %-20s %s\n", m.Image, m.Analysis, ui.DimText(m.Type))
	}
}
