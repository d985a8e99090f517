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
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/edxconcat/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edxconcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
output: results/edx.csv
log_level: debug
metrics_addr: ":9102"
storage:
  s3:
    endpoint: minio:9000
    region: eu-west-1
    access_key: minio
    secret_key: minio123
    bucket: lab
    use_ssl: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "results/edx.csv", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9102", cfg.MetricsAddr)
	assert.Equal(t, "minio:9000", cfg.Storage.S3.Endpoint)
	assert.Equal(t, "eu-west-1", cfg.Storage.S3.Region)
	assert.Equal(t, "minio", cfg.Storage.S3.AccessKey)
	assert.Equal(t, "minio123", cfg.Storage.S3.SecretKey)
	assert.Equal(t, "lab", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.UseSSL)
}

func TestLoadConfig_DefaultFileMissing(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var ue *errors.UserError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, errors.ExitNotFound, ue.ExitCode)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "output: [unterminated\n")

	_, err := LoadConfig(path)
	var ue *errors.UserError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, errors.ExitConfig, ue.ExitCode)
	assert.Equal(t, "Invalid configuration file", ue.Message)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: chatty\n")

	_, err := LoadConfig(path)
	var ue *errors.UserError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, errors.ExitConfig, ue.ExitCode)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
output: from-file.csv
storage:
  s3:
    endpoint: file-endpoint:9000
    bucket: file-bucket
`)
	t.Setenv("EDXCONCAT_OUTPUT", "s3://env-bucket/edx.csv")
	t.Setenv("EDXCONCAT_S3_ENDPOINT", "env-endpoint:9000")
	t.Setenv("EDXCONCAT_S3_ACCESS_KEY", "env-access")
	t.Setenv("EDXCONCAT_S3_SECRET_KEY", "env-secret")
	t.Setenv("EDXCONCAT_S3_USE_SSL", "true")
	t.Setenv("EDXCONCAT_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "s3://env-bucket/edx.csv", cfg.Output)
	assert.Equal(t, "env-endpoint:9000", cfg.Storage.S3.Endpoint)
	assert.Equal(t, "env-access", cfg.Storage.S3.AccessKey)
	assert.Equal(t, "env-secret", cfg.Storage.S3.SecretKey)
	assert.Equal(t, "file-bucket", cfg.Storage.S3.Bucket, "unset variables keep file values")
	assert.True(t, cfg.Storage.S3.UseSSL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_InvalidUseSSLIgnored(t *testing.T) {
	t.Setenv("EDXCONCAT_S3_USE_SSL", "sometimes")
	cfg, err := LoadConfig(writeConfig(t, "storage:\n  s3:\n    use_ssl: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Storage.S3.UseSSL)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", " "))
	assert.Equal(t, "", firstNonEmpty())
}
