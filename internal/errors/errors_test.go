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

package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UserError
		want string
	}{
		{
			name: "with underlying error",
			err:  &UserError{Message: "Cannot save dataset", Err: fmt.Errorf("disk full")},
			want: "Cannot save dataset: disk full",
		},
		{
			name: "without underlying error",
			err:  &UserError{Message: "Missing root argument"},
			want: "Missing root argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UserError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	underlying := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *UserError
		wantCode int
		wantErr  error
	}{
		{"config", NewConfigError("m", "c", "f", underlying), ExitConfig, underlying},
		{"storage", NewStorageError("m", "c", "f", underlying), ExitStorage, underlying},
		{"input", NewInputError("m", "c", "f"), ExitInput, nil},
		{"permission", NewPermissionError("m", "c", "f", underlying), ExitPermission, underlying},
		{"not found", NewNotFoundError("m", "c", "f"), ExitNotFound, nil},
		{"internal", NewInternalError("m", "c", "f", underlying), ExitInternal, underlying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", tt.err.ExitCode, tt.wantCode)
			}
			if tt.err.Message != "m" || tt.err.Cause != "c" || tt.err.Fix != "f" {
				t.Errorf("fields not populated: %+v", tt.err)
			}
			if tt.err.Unwrap() != tt.wantErr {
				t.Errorf("Unwrap() = %v, want %v", tt.err.Unwrap(), tt.wantErr)
			}
		})
	}
}

func TestExitCodes_Uniqueness(t *testing.T) {
	codes := []int{ExitSuccess, ExitConfig, ExitStorage, ExitInput, ExitPermission, ExitNotFound, ExitInternal}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}

func TestFromPathError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not exist", fmt.Errorf("stat root: %w", fs.ErrNotExist), ExitNotFound},
		{"permission", fmt.Errorf("open: %w", fs.ErrPermission), ExitPermission},
		{"other", fmt.Errorf("device busy"), ExitStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ue := FromPathError("Cannot scan", "/data", tt.err)
			if ue.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", ue.ExitCode, tt.wantCode)
			}
			if !stderrors.Is(ue, tt.err) {
				t.Errorf("UserError does not wrap %v", tt.err)
			}
		})
	}
}

func TestErrorChain(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	wrapped := fmt.Errorf("context: %w", NewStorageError("Cannot save", "", "", sentinel))

	var ue *UserError
	if !stderrors.As(wrapped, &ue) {
		t.Fatal("errors.As failed to find UserError")
	}
	if ue.ExitCode != ExitStorage {
		t.Errorf("ExitCode = %d, want %d", ue.ExitCode, ExitStorage)
	}
	if !stderrors.Is(wrapped, sentinel) {
		t.Error("errors.Is failed to find sentinel through UserError")
	}
}

func TestUserError_Format(t *testing.T) {
	tests := []struct {
		name    string
		err     *UserError
		want    []string
		notWant []string
	}{
		{
			name: "full error",
			err: &UserError{
				Message: "Export folder not found",
				Cause:   "/data/exports does not exist",
				Fix:     "Check the path",
			},
			want: []string{"Error: Export folder not found", "Cause: /data/exports does not exist", "Fix:   Check the path"},
		},
		{
			name:    "message only",
			err:     &UserError{Message: "Something failed"},
			want:    []string{"Error: Something failed"},
			notWant: []string{"Cause:", "Fix:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(true)
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\nGot: %s", s, got)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\nGot: %s", s, got)
				}
			}
		})
	}
}

func TestUserError_Format_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	err := &UserError{Message: "Test error", Cause: "Test cause", Fix: "Test fix"}
	got := err.Format(false)
	if strings.Contains(got, "\x1b[") {
		t.Errorf("Format() with NO_COLOR contains ANSI codes: %q", got)
	}
}

func TestUserError_ToJSON(t *testing.T) {
	err := NewNotFoundError("Dataset not found", "edx.csv does not exist", "")
	got := err.ToJSON()

	if got.Error != "Dataset not found" {
		t.Errorf("Error = %q", got.Error)
	}
	if got.Cause != "edx.csv does not exist" {
		t.Errorf("Cause = %q", got.Cause)
	}
	if got.Fix != "" {
		t.Errorf("Fix = %q, want empty", got.Fix)
	}
	if got.ExitCode != ExitNotFound {
		t.Errorf("ExitCode = %d, want %d", got.ExitCode, ExitNotFound)
	}
}

func TestFatalError_Nil(t *testing.T) {
	FatalError(nil, false)
}
