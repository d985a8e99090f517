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
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/edxconcat/internal/errors"
	"github.com/kraklabs/edxconcat/internal/output"
	"github.com/kraklabs/edxconcat/internal/ui"
	"github.com/kraklabs/edxconcat/pkg/edx"
	"github.com/kraklabs/edxconcat/pkg/storage"
)

const defaultExtension = ".csv"

// ScanReport is the result of the 'scan' command.
type ScanReport struct {
	*edx.Result

	RegularRows  int            `json:"regular_rows"`
	LinescanRows int            `json:"linescan_rows"`
	SkipCounts   map[string]int `json:"skip_counts,omitempty"`
	Outputs      []SavedOutput  `json:"outputs,omitempty"`
}

// SavedOutput describes one dataset written by 'scan'.
type SavedOutput struct {
	Dataset string `json:"dataset"`
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
}

type scanOptions struct {
	Root   string
	Output string
}

// runScan executes the 'scan' CLI command.
//
// It walks the export tree under <root>, classifies each CSV file and builds
// the regular and linescan datasets. With -o (or 'output' in the config
// file) both datasets are saved: the regular one to the given destination
// and the linescan one next to it with a _linescan suffix.
//
// Flags:
//   - -o, --output: Save destination, a local path or s3://bucket/key
//   - --json: Output the scan report as JSON
//   - -q, --quiet: Suppress progress and informational logs
//   - --debug: Enable debug logging
//   - --metrics-addr: HTTP address for Prometheus metrics (default: disabled)
func runScan(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	outputDest := fs.StringP("output", "o", "", "Save destination (local path or s3://bucket/key); .csv is added when there is no extension")
	jsonOutput := fs.Bool("json", false, "Output the scan report as JSON")
	quiet := fs.BoolP("quiet", "q", false, "Suppress progress and informational logs")
	debug := fs.Bool("debug", false, "Enable debug logging")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: edxconcat scan <root> [options]

Scans <root> recursively for EDX exports. Files ending in quantification.csv
are added to the regular dataset; linescan files (atomic or weight) are
reshaped into the long-format linescan dataset. Without an output
destination only the report is printed.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  edxconcat scan ./exports
  edxconcat scan ./exports -o results/edx
  edxconcat scan ./exports -o s3://lab-results/run-42/edx.csv --json
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitInput)
	}
	globals.JSON = *jsonOutput
	globals.Quiet = *quiet

	if fs.NArg() != 1 {
		errors.FatalError(errors.NewInputError(
			"Missing export folder",
			"scan takes exactly one <root> argument",
			"Run: edxconcat scan <root> [-o dest]",
		), globals.JSON)
	}

	cfg, err := LoadConfig(globals.ConfigPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	level, _ := parseLogLevel(cfg.LogLevel)
	switch {
	case *debug:
		level = slog.LevelDebug
	case globals.Quiet && level < slog.LevelWarn:
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if addr := firstNonEmpty(*metricsAddr, cfg.MetricsAddr); addr != "" {
		startMetricsServer(logger, addr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutdown.signal", "signal", sig.String())
		cancel()
	}()

	opts := scanOptions{
		Root:   fs.Arg(0),
		Output: firstNonEmpty(*outputDest, cfg.Output),
	}
	report, err := executeScan(ctx, logger, cfg, opts, NewProgressConfig(globals))
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	printer := output.New(os.Stdout, globals.JSON)
	if err := printer.Emit(report, func(io.Writer) { printScanReport(report) }); err != nil {
		errors.FatalError(errors.NewInternalError("Cannot write scan report", err.Error(), "", err), false)
	}
}

// startMetricsServer serves /metrics on addr in the background.
func startMetricsServer(logger *slog.Logger, addr string) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
}

// executeScan runs one scan and, when opts.Output is set, saves the datasets.
// Errors are returned as UserErrors ready for FatalError.
func executeScan(ctx context.Context, logger *slog.Logger, cfg *Config, opts scanOptions, progress ProgressConfig) (*ScanReport, error) {
	scanner := edx.NewScanner(logger)
	spinner := NewSpinner(progress, "Scanning")
	if spinner != nil {
		scanner.OnFile = func(string) { _ = spinner.Add(1) }
	}

	res, err := scanner.Scan(ctx, opts.Root)
	if spinner != nil {
		_ = spinner.Finish()
	}
	if err != nil {
		return nil, scanError(opts.Root, err)
	}

	report := &ScanReport{
		Result:       res,
		RegularRows:  len(res.Regular),
		LinescanRows: len(res.Linescan),
		SkipCounts:   res.SkipCounts(),
	}
	if opts.Output == "" {
		return report, nil
	}

	dest := withDefaultExtension(opts.Output)
	backend, err := storage.Open(dest, cfg.Storage.S3)
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot open output destination",
			err.Error(),
			"Set storage.s3 in "+defaultConfigFile+" or the EDXCONCAT_S3_* variables",
			err,
		)
	}

	saveErr := edx.Save(ctx, logger, backend, res.Datasets(), dest)
	report.Outputs = savedOutputs(res, dest, saveErr)
	if saveErr != nil {
		if stderrors.Is(saveErr, os.ErrPermission) {
			return nil, errors.NewPermissionError("Cannot save datasets", saveErr.Error(), "Choose a destination you can write to", saveErr)
		}
		return nil, errors.NewStorageError("Cannot save datasets", saveErr.Error(), "Check that the destination is reachable and writable", saveErr)
	}
	return report, nil
}

// scanError converts a whole-run scan failure into a UserError.
func scanError(root string, err error) error {
	switch {
	case stderrors.Is(err, context.Canceled):
		return errors.NewInternalError("Scan cancelled", "The scan was interrupted before it finished", "Run the scan again; nothing was saved", err)
	case stderrors.Is(err, edx.ErrRootNotDirectory):
		return errors.NewInputError("Export folder is not a directory", root+" is a file", "Pass the folder that contains the measurement folders")
	default:
		return errors.FromPathError("Cannot scan export folder", root, err)
	}
}

// withDefaultExtension appends .csv to a destination that has no extension.
func withDefaultExtension(dest string) string {
	if filepath.Ext(dest) == "" {
		return dest + defaultExtension
	}
	return dest
}

// savedOutputs lists the datasets Save wrote. Datasets named by a
// *edx.SaveError in saveErr are omitted.
func savedOutputs(res *edx.Result, dest string, saveErr error) []SavedOutput {
	failed := make(map[string]bool)
	for _, err := range unwrapJoined(saveErr) {
		var se *edx.SaveError
		if stderrors.As(err, &se) {
			failed[se.Dataset] = true
		}
	}

	var out []SavedOutput
	if n := len(res.Regular); n > 0 && !failed[edx.DatasetRegular] {
		out = append(out, SavedOutput{Dataset: edx.DatasetRegular, Path: dest, Rows: n})
	}
	if n := len(res.Linescan); n > 0 && !failed[edx.DatasetLinescan] {
		out = append(out, SavedOutput{Dataset: edx.DatasetLinescan, Path: edx.LinescanPath(dest), Rows: n})
	}
	return out
}

func unwrapJoined(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func printScanReport(r *ScanReport) {
	ui.Header("Scan of " + r.Root)
	ui.Field("Run:", ui.DimText(r.RunID))
	ui.Field("Files visited:", ui.CountText(r.FilesVisited))
	ui.Field("Regular files:", fmt.Sprintf("%s (%d rows)", ui.CountText(r.RegularFiles), r.RegularRows))
	ui.Field("Linescan files:", fmt.Sprintf("%s (%d rows)", ui.CountText(r.LinescanFiles), r.LinescanRows))
	ui.Field("Ignored files:", ui.CountText(r.IgnoredFiles))
	ui.Field("Duration:", r.Duration.Round(time.Millisecond))

	if len(r.Skipped) > 0 {
		fmt.Fprintln(ui.Out)
		ui.SubHeader(fmt.Sprintf("Skipped files (%d)", len(r.Skipped)))
		for _, s := range r.Skipped {
			ui.Warningf("%s [%s] %s", s.Path, s.Reason, s.Error())
		}
	}

	if len(r.MissingIdentifier) > 0 {
		fmt.Fprintln(ui.Out)
		ui.SubHeader(fmt.Sprintf("No measurement identifier (%d)", len(r.MissingIdentifier)))
		for _, p := range r.MissingIdentifier {
			fmt.Fprintf(ui.Out, "  %s\n", ui.DimText(p))
		}
	}

	fmt.Fprintln(ui.Out)
	switch {
	case len(r.Outputs) > 0:
		for _, o := range r.Outputs {
			ui.Successf("Saved %s dataset (%d rows) to %s", o.Dataset, o.Rows, o.Path)
		}
	case r.RegularRows == 0 && r.LinescanRows == 0:
		ui.Warningf("No EDX data found")
	default:
		ui.Infof("Nothing saved. Pass -o <dest> to write the datasets.")
	}
}
