/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifparser

import (
	"github.com/go-logr/logr"
)

type Options struct {
	// Logger receives verbose parse tracing on V(1). Defaults to discard.
	Logger logr.Logger
}
