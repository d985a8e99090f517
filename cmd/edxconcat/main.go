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

// Package main implements the edxconcat CLI, which collects EDX
// quantification and linescan exports from a directory tree into two
// consolidated CSV datasets.
//
// Usage:
//
//	edxconcat scan <root> [-o dest]   Scan an export tree and save the datasets
//	edxconcat summary <dataset.csv>   List the measurements of a saved dataset
//	edxconcat version                 Show version information
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/edxconcat/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds options shared by every command. JSON and Quiet are
// filled in by the commands that accept them.
type GlobalFlags struct {
	ConfigPath string
	NoColor    bool
	JSON       bool
	Quiet      bool
}

func main() {
	var globals GlobalFlags
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.StringVar(&globals.ConfigPath, "config", "", "Path to configuration file (default: ./"+defaultConfigFile+")")
	flag.BoolVar(&globals.NoColor, "no-color", false, "Disable coloured output")
	flag.CommandLine.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `edxconcat - EDX export concatenation

Walks a folder of EDX measurement exports and merges every quantification
table into one regular dataset and every linescan table into one long-format
linescan dataset.

Usage:
  edxconcat [global options] <command> [options]

Commands:
  scan      Scan an export tree and optionally save the datasets
  summary   List the measurements contained in a saved dataset
  version   Show version information

Global Options:
  --config    Path to configuration file (default: ./%s)
  --no-color  Disable coloured output
  --version   Show version and exit

Examples:
  edxconcat scan ./exports                      Report what would be collected
  edxconcat scan ./exports -o results/edx.csv   Save edx.csv and edx_linescan.csv
  edxconcat scan ./exports -o s3://lab/edx.csv  Save to an S3 bucket
  edxconcat summary results/edx.csv             List measurements in a dataset

Environment Variables:
  EDXCONCAT_OUTPUT      Default save destination
  EDXCONCAT_S3_*        Object store settings (ENDPOINT, REGION, ACCESS_KEY,
                        SECRET_KEY, BUCKET, USE_SSL)

For detailed command help: edxconcat <command> --help

`, defaultConfigFile)
	}

	flag.Parse()
	ui.InitColors(globals.NoColor)

	if *showVersion {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "scan":
		runScan(cmdArgs, globals)
	case "summary":
		runSummary(cmdArgs, globals)
	case "version":
		printVersion()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("edxconcat version %s\n", version)
	fmt.Printf("commit: %s\n", commit)
	fmt.Printf("built: %s\n", date)
}
