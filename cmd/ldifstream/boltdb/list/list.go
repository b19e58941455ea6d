/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package list

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/libregraph/ldifstream/pkg/ldifbolt"
)

type Lister struct {
	logger logrus.FieldLogger
	dbFile string
}

func NewLister(logLevel, dbFile string) (*Lister, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	res := &Lister{
		logger: &logrus.Logger{
			Out:       os.Stderr,
			Formatter: &logrus.TextFormatter{},
			Level:     level,
		},
		dbFile: dbFile,
	}
	return res, nil
}

// List writes the dn of every stored entry to w, one per line.
func (l *Lister) List(w io.Writer) error {
	store := &ldifbolt.Store{}

	if err := store.Configure(l.logger, "", l.dbFile, &bolt.Options{ReadOnly: true}); err != nil {
		return err
	}
	defer store.Close()

	dns, err := store.DNs()
	if err != nil {
		l.logger.Error(err)
		return err
	}

	for _, dn := range dns {
		fmt.Fprintln(w, dn)
	}
	return nil
}
