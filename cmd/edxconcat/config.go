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
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/edxconcat/internal/errors"
	"github.com/kraklabs/edxconcat/pkg/storage"
)

const defaultConfigFile = ".edxconcat.yaml"

// Config is the optional edxconcat configuration file.
type Config struct {
	// Output is the default save destination for 'scan'.
	Output string `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// MetricsAddr, when set, serves Prometheus metrics during a scan.
	MetricsAddr string `yaml:"metrics_addr"`

	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig configures non-local destinations.
type StorageConfig struct {
	S3 storage.S3Config `yaml:"s3"`
}

// LoadConfig reads the configuration file at path, then applies a .env file
// from the working directory and EDXCONCAT_* environment variables on top.
// An empty path reads ./.edxconcat.yaml when it exists; an explicitly given
// path must exist.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{LogLevel: "info"}

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError(
				"Invalid configuration file",
				fmt.Sprintf("%s: %v", path, err),
				"Fix the YAML syntax or remove the file",
				err,
			)
		}
	case explicit || !stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.FromPathError("Cannot read configuration file", path, err)
	}

	applyEnv(cfg)

	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, errors.NewConfigError(
			"Invalid log level",
			fmt.Sprintf("log_level %q is not one of debug, info, warn, error", cfg.LogLevel),
			"Set log_level in "+path+" or EDXCONCAT_LOG_LEVEL",
			err,
		)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Output, "EDXCONCAT_OUTPUT")
	setFromEnv(&cfg.LogLevel, "EDXCONCAT_LOG_LEVEL")
	setFromEnv(&cfg.MetricsAddr, "EDXCONCAT_METRICS_ADDR")

	s3 := &cfg.Storage.S3
	setFromEnv(&s3.Endpoint, "EDXCONCAT_S3_ENDPOINT")
	setFromEnv(&s3.Region, "EDXCONCAT_S3_REGION")
	setFromEnv(&s3.AccessKey, "EDXCONCAT_S3_ACCESS_KEY")
	setFromEnv(&s3.SecretKey, "EDXCONCAT_S3_SECRET_KEY")
	setFromEnv(&s3.Bucket, "EDXCONCAT_S3_BUCKET")
	if raw := strings.TrimSpace(os.Getenv("EDXCONCAT_S3_USE_SSL")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			s3.UseSSL = v
		}
	}
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// parseLogLevel maps a level name to a slog level. Empty means info.
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
