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

// Package errors provides structured CLI errors for edxconcat.
//
// UserError carries what went wrong, why, and how to fix it, plus the exit
// code the process should end with:
//
//	err := errors.NewNotFoundError(
//	    "Export folder not found",
//	    "/data/exports does not exist",
//	    "Check the path passed to 'edxconcat scan'",
//	)
//	errors.FatalError(err, jsonMode)
//
// Format renders coloured terminal output; ToJSON renders the machine form
// used with --json.
//
// # Exit Codes
//
//   - ExitSuccess (0)
//   - ExitConfig (1): unreadable or invalid configuration
//   - ExitStorage (2): a dataset could not be saved or loaded
//   - ExitInput (4): bad arguments
//   - ExitPermission (5): filesystem permission denied
//   - ExitNotFound (6): root directory or dataset file missing
//   - ExitInternal (10): bugs
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	ExitSuccess    = 0
	ExitConfig     = 1
	ExitStorage    = 2
	ExitInput      = 4
	ExitPermission = 5
	ExitNotFound   = 6
	ExitInternal   = 10
)

// UserError is an error with user-facing context and an exit code.
type UserError struct {
	// Message describes what went wrong.
	Message string

	// Cause explains why it happened.
	Cause string

	// Fix suggests how to resolve it.
	Fix string

	// ExitCode is the process exit code for this error.
	ExitCode int

	// Err is the wrapped error, if any.
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: code, Err: err}
}

// NewConfigError creates a configuration error (ExitConfig).
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitConfig, msg, cause, fix, err)
}

// NewStorageError creates a dataset persistence error (ExitStorage).
func NewStorageError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitStorage, msg, cause, fix, err)
}

// NewInputError creates an invalid-argument error (ExitInput).
func NewInputError(msg, cause, fix string) *UserError {
	return newUserError(ExitInput, msg, cause, fix, nil)
}

// NewPermissionError creates a permission error (ExitPermission).
func NewPermissionError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitPermission, msg, cause, fix, err)
}

// NewNotFoundError creates a not-found error (ExitNotFound).
func NewNotFoundError(msg, cause, fix string) *UserError {
	return newUserError(ExitNotFound, msg, cause, fix, nil)
}

// NewInternalError creates an internal error (ExitInternal).
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitInternal, msg, cause, fix, err)
}

// FromPathError classifies a filesystem error on path into a UserError.
// Missing paths map to ExitNotFound and permission failures to
// ExitPermission; anything else is returned as a storage error.
func FromPathError(msg, path string, err error) *UserError {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		ue := NewNotFoundError(msg, fmt.Sprintf("%s does not exist", path), "Check the path and try again")
		ue.Err = err
		return ue
	case stderrors.Is(err, fs.ErrPermission):
		return NewPermissionError(msg, fmt.Sprintf("Permission denied for %s", path), "Run with a user that can read the path", err)
	default:
		return NewStorageError(msg, err.Error(), "", err)
	}
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format renders the error for a terminal:
//
//	Error: Export folder not found
//	Cause: /data/exports does not exist
//	Fix:   Check the path passed to 'edxconcat scan'
//
// Empty Cause or Fix lines are omitted. Colour is disabled when noColor is
// set or NO_COLOR is present; the global color.NoColor state is restored.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}
	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}
	return out.String()
}

// ErrorJSON is the JSON form of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the error to its JSON form.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// FatalError prints err to stderr and exits. UserErrors use their own exit
// code; any other error exits with ExitInternal. A nil error is a no-op.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	var ue *UserError
	if stderrors.As(err, &ue) {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON()) // exiting regardless
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}
