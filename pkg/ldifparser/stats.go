/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifparser

import (
	"sync"
)

// Stats holds running parse counters. All count methods are nil safe so the
// parser can call them unconditionally.
type Stats struct {
	Lines         uint64
	Entries       uint64
	Attributes    uint64
	Comments      uint64
	Continuations uint64
	BinaryValues  uint64
	statsMutex    sync.RWMutex
}

func (stats *Stats) countLines(delta uint64) {
	if stats != nil {
		stats.statsMutex.Lock()
		stats.Lines += delta
		stats.statsMutex.Unlock()
	}
}

func (stats *Stats) countEntries(delta uint64) {
	if stats != nil {
		stats.statsMutex.Lock()
		stats.Entries += delta
		stats.statsMutex.Unlock()
	}
}

func (stats *Stats) countAttributes(delta uint64) {
	if stats != nil {
		stats.statsMutex.Lock()
		stats.Attributes += delta
		stats.statsMutex.Unlock()
	}
}

func (stats *Stats) countComments(delta uint64) {
	if stats != nil {
		stats.statsMutex.Lock()
		stats.Comments += delta
		stats.statsMutex.Unlock()
	}
}

func (stats *Stats) countContinuations(delta uint64) {
	if stats != nil {
		stats.statsMutex.Lock()
		stats.Continuations += delta
		stats.statsMutex.Unlock()
	}
}

func (stats *Stats) countBinaryValues(delta uint64) {
	if stats != nil {
		stats.statsMutex.Lock()
		stats.BinaryValues += delta
		stats.statsMutex.Unlock()
	}
}

func (stats *Stats) Clone() *Stats {
	var s2 *Stats
	if stats != nil {
		s2 = &Stats{}
		stats.statsMutex.RLock()
		s2.Lines = stats.Lines
		s2.Entries = stats.Entries
		s2.Attributes = stats.Attributes
		s2.Comments = stats.Comments
		s2.Continuations = stats.Continuations
		s2.BinaryValues = stats.BinaryValues
		stats.statsMutex.RUnlock()
	}
	return s2
}
