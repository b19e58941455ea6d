/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifparser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine is returned for a non-empty, non-comment line
	// without a colon separator.
	ErrMalformedLine = errors.New("line without colon separator")

	// ErrInvalidBase64 is returned when a double colon marked value does
	// not decode as base64.
	ErrInvalidBase64 = errors.New("invalid base64 value")

	// ErrInvalidDNEncoding is returned when a base64 dn value decodes to
	// bytes which are not valid UTF-8. A dn is always text.
	ErrInvalidDNEncoding = errors.New("base64 dn is not valid UTF-8")

	// ErrAttributeOutsideEntry is returned for an attribute line while no
	// entry is open.
	ErrAttributeOutsideEntry = errors.New("attribute line outside of entry")
)

func lineError(line int, err error) error {
	return fmt.Errorf("ldif: line %d: %w", line, err)
}
