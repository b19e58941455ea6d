/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package load

import (
	"fmt"
	"os"

	"github.com/go-ldap/ldap/v3"
	"github.com/sirupsen/logrus"

	"github.com/libregraph/ldifstream/pkg/ldifbolt"
	"github.com/libregraph/ldifstream/pkg/ldifentry"
	"github.com/libregraph/ldifstream/pkg/ldifparser"
)

type LDIFLoader struct {
	logger logrus.FieldLogger
	dbFile string
	baseDN string
}

func NewLDIFLoader(logLevel, dbFile, base string) (*LDIFLoader, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	res := &LDIFLoader{
		logger: &logrus.Logger{
			Out:       os.Stderr,
			Formatter: &logrus.TextFormatter{},
			Level:     level,
		},
		dbFile: dbFile,
		baseDN: base,
	}
	return res, nil
}

// Load streams the named LDIF file into the database, one entry per
// completed end-entry event.
func (l *LDIFLoader) Load(ldifFile string) error {
	store := &ldifbolt.Store{}

	if err := store.Configure(l.logger, l.baseDN, l.dbFile, nil); err != nil {
		return err
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		return err
	}

	collector := ldifentry.NewCollector(&ldifentry.Options{
		OnEntry: func(entry *ldap.Entry) error {
			l.logger.Debugf("Adding '%s'", entry.DN)
			if err := store.EntryPut(entry); err != nil {
				return fmt.Errorf("error adding entry '%s': %w", entry.DN, err)
			}
			return nil
		},
	})

	return ldifparser.ParseFile(ldifFile, collector, nil)
}
