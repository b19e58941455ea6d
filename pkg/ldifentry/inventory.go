/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifentry

import (
	"strings"

	"github.com/armon/go-radix"
)

// Inventory is a census of the attribute names seen in a stream. Names are
// kept lowercased in a radix tree so walks come out in sorted order and
// vendor prefixes can be enumerated together.
type Inventory struct {
	t *radix.Tree
}

func NewInventory() *Inventory {
	return &Inventory{
		t: radix.New(),
	}
}

// Record counts one occurrence of the named attribute.
func (inv *Inventory) Record(name string) {
	key := strings.ToLower(name)
	if v, ok := inv.t.Get(key); ok {
		inv.t.Insert(key, v.(uint64)+1)
	} else {
		inv.t.Insert(key, uint64(1))
	}
}

// Walk visits all recorded names in sorted order until fn returns true.
func (inv *Inventory) Walk(fn func(name string, count uint64) bool) {
	inv.t.Walk(func(k string, v interface{}) bool {
		return fn(k, v.(uint64))
	})
}

// WalkPrefix visits the recorded names sharing the given prefix.
func (inv *Inventory) WalkPrefix(prefix string, fn func(name string, count uint64) bool) {
	inv.t.WalkPrefix(strings.ToLower(prefix), func(k string, v interface{}) bool {
		return fn(k, v.(uint64))
	})
}

// Len returns the number of distinct attribute names recorded.
func (inv *Inventory) Len() int {
	return inv.t.Len()
}
