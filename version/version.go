/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package version

// Variables set at build time via ldflags.
var (
	Version   = "0.0.0-unreleased"
	BuildDate = "unknown"
)
