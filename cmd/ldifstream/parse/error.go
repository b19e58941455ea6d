/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package parse

const (
	ExitCodeStartupError = 64
	ExitCodeParseError   = 65
)

type ErrorWithExitCode struct {
	Code int
	Err  error
}

func (e *ErrorWithExitCode) Error() string {
	return e.Err.Error()
}

func (e *ErrorWithExitCode) Unwrap() error {
	return e.Err
}

func WrapErrorWithExitCode(err error, code int) error {
	return &ErrorWithExitCode{
		Err:  err,
		Code: code,
	}
}

func StartupError(err error) error {
	return WrapErrorWithExitCode(err, ExitCodeStartupError)
}

func ParseError(err error) error {
	return WrapErrorWithExitCode(err, ExitCodeParseError)
}
