/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifentry

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// Index records attribute values of entries for later lookup by attribute
// name, operation and value.
type Index interface {
	Add(name, op string, values []string, entry *ldap.Entry) bool
	Load(name, op, value string) ([]*ldap.Entry, bool)
}

var indexAttributes = map[string]string{
	"entryCSN":     "eq",
	"entryUUID":    "eq",
	"objectClass":  "eq",
	"cn":           "eq",
	"gidNumber":    "eq",
	"mail":         "eq",
	"memberUid":    "eq",
	"ou":           "eq",
	"uid":          "eq",
	"uidNumber":    "eq",
	"uniqueMember": "eq",

	"sn":        "eq",
	"givenName": "eq",
}

type indexMap map[string][]*ldap.Entry

func newIndexMap() indexMap {
	return make(indexMap)
}

type indexMapRegister map[string]indexMap

// NewIndexMapRegister creates an Index over the default set of indexed
// attributes.
func NewIndexMapRegister() Index {
	imr := make(indexMapRegister)
	for name, ops := range indexAttributes {
		switch name {
		case "objectClass":
			// Don't index objectClass, makes no sense since everything has it.
		default:
			for _, op := range strings.Split(ops, ",") {
				imr[imr.getKey(name, op)] = newIndexMap()
			}
		}
	}
	return imr
}

func (imr indexMapRegister) getKey(name, op string) string {
	return strings.ToLower(name) + "," + op
}

func (imr indexMapRegister) Add(name, op string, values []string, entry *ldap.Entry) bool {
	index, ok := imr[imr.getKey(name, op)]
	if !ok {
		return false
	}
	for _, value := range values {
		value = strings.ToLower(value)
		index[value] = append(index[value], entry)
	}
	return true
}

func (imr indexMapRegister) Load(name, op, value string) ([]*ldap.Entry, bool) {
	index, ok := imr[imr.getKey(name, op)]
	if !ok {
		return nil, false
	}
	values, ok := index[strings.ToLower(value)]
	return values, ok
}
