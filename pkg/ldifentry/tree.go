/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifentry

import (
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/spacewander/go-suffix-tree"
)

// TreeFromEntries makes a dn suffix tree out of the provided entries. Keys
// are the lowercased dn strings, so subtree walks by base dn suffix work
// regardless of attribute value casing. Duplicate dns are an error.
func TreeFromEntries(entries []*ldap.Entry) (*suffix.Tree, error) {
	t := suffix.NewTree()

	for _, entry := range entries {
		v, ok := t.Insert([]byte(strings.ToLower(entry.DN)), entry)
		if !ok || v != nil {
			return nil, fmt.Errorf("duplicate value: %s", entry.DN)
		}
	}

	return t, nil
}
