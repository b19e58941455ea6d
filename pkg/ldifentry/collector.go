/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

// Package ldifentry assembles go-ldap entries from the event stream of the
// ldifparser package and provides the lookup structures built from them.
package ldifentry

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"github.com/libregraph/ldifstream/pkg/ldifparser"
)

type Options struct {
	// Index, when set, receives an equality index record for every text
	// attribute value.
	Index Index

	// Inventory, when set, is fed every attribute name.
	Inventory *Inventory

	// OnEntry, when set, receives each completed entry instead of the
	// collector accumulating it. This keeps memory bounded to a single
	// entry when streaming large files.
	OnEntry func(*ldap.Entry) error
}

// Collector is a parse event handler which assembles complete ldap.Entry
// values. Repeated attribute lines merge into multi valued attributes,
// binary values additionally fill ByteValues.
type Collector struct {
	options Options

	entries []*ldap.Entry
	current *ldap.Entry
}

var _ ldifparser.Handler = (*Collector)(nil) // Verify that *Collector implements ldifparser.Handler.

// NewCollector creates a Collector. Options may be nil.
func NewCollector(options *Options) *Collector {
	c := &Collector{}
	if options != nil {
		c.options = *options
	}
	return c
}

func (c *Collector) BeginEntry(dn string) error {
	c.current = &ldap.Entry{
		DN: dn,
	}
	return nil
}

func (c *Collector) Attribute(name string, value ldifparser.Value) error {
	if c.current == nil {
		return fmt.Errorf("attribute %q without open entry", name)
	}

	var attr *ldap.EntryAttribute
	for _, a := range c.current.Attributes {
		if a.Name == name {
			attr = a
			break
		}
	}
	if attr == nil {
		attr = &ldap.EntryAttribute{
			Name: name,
		}
		c.current.Attributes = append(c.current.Attributes, attr)
	}
	attr.Values = append(attr.Values, value.String())
	attr.ByteValues = append(attr.ByteValues, value.Bytes())

	if c.options.Inventory != nil {
		c.options.Inventory.Record(name)
	}
	if c.options.Index != nil && !value.IsBinary() {
		c.options.Index.Add(name, "eq", []string{value.String()}, c.current)
	}

	return nil
}

func (c *Collector) EndEntry(dn string) error {
	entry := c.current
	c.current = nil
	if entry == nil {
		return fmt.Errorf("end of entry %q without open entry", dn)
	}

	if c.options.OnEntry != nil {
		return c.options.OnEntry(entry)
	}
	c.entries = append(c.entries, entry)
	return nil
}

// Entries returns the accumulated entries. Empty when an OnEntry hook
// consumed them.
func (c *Collector) Entries() []*ldap.Entry {
	return c.entries
}
