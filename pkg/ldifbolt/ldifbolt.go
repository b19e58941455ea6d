/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

// Package ldifbolt persists parsed LDIF entries in a BoltDB database.
//
// The database uses a single bucket
//
// - dn2entry: GOB encoded ldap.Entry instances keyed by the case-folded DN
//
// Keys being full DNs means lookup is by identity and listing comes out in
// byte order of the folded DN. Scope or filter based search stays with the
// consumers of this package.
package ldifbolt

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/text/cases"
)

var (
	ErrEntryAlreadyExists = errors.New("entry already exists")
	ErrEntryNotFound      = errors.New("entry not found")
)

type Store struct {
	logger  logrus.FieldLogger
	db      *bolt.DB
	options *bolt.Options
	base    string
}

// Configure opens the database file. An empty baseDN disables the
// containment check on EntryPut.
func (store *Store) Configure(logger logrus.FieldLogger, baseDN, dbfile string, options *bolt.Options) error {
	store.logger = logger
	logger.Debugf("Open boltdb %s", dbfile)
	db, err := bolt.Open(dbfile, 0o600, options)
	if err != nil {
		store.logger.WithError(err).Error("Error opening database")
		return err
	}
	store.db = db
	store.options = options
	if baseDN != "" {
		nBase, err := NormalizeDN(baseDN)
		if err != nil {
			return fmt.Errorf("invalid base dn '%s': %w", baseDN, err)
		}
		store.base = nBase
	}
	return nil
}

// Initialize creates the required buckets if they do not exist yet. After
// calling Initialize the database is ready to process transactions.
func (store *Store) Initialize() error {
	var err error
	if store.options == nil || !store.options.ReadOnly {
		store.logger.Debug("Adding default buckets")
		err = store.db.Update(func(tx *bolt.Tx) error {
			_, err = tx.CreateBucketIfNotExists([]byte("dn2entry"))
			if err != nil {
				return fmt.Errorf("create bucket 'dn2entry': %w", err)
			}
			return nil
		})
		if err != nil {
			store.logger.WithError(err).Error("Error creating default buckets")
		}
	}
	return err
}

// NormalizeDN case-folds the string representation of the parsed dn so that
// lookups are independent of attribute value casing.
func NormalizeDN(dnString string) (string, error) {
	dn, err := ldap.ParseDN(dnString)
	if err != nil {
		return "", err
	}

	var nDN string
	caseFold := cases.Fold()
	for r, rdn := range dn.RDNs {
		for a, ava := range rdn.Attributes {
			if a > 0 {
				// This is a multivalued RDN.
				nDN += "+"
			} else if r > 0 {
				nDN += ","
			}
			nDN = nDN + caseFold.String(ava.Type) + "=" + caseFold.String(ava.Value)
		}
	}
	return nDN, nil
}

// EntryPut stores the entry keyed by its normalized dn. Storing a dn twice
// fails with ErrEntryAlreadyExists, a dn outside of the configured base
// fails as well.
func (store *Store) EntryPut(e *ldap.Entry) error {
	nDN, err := NormalizeDN(e.DN)
	if err != nil {
		return fmt.Errorf("invalid dn '%s': %w", e.DN, err)
	}

	if store.base != "" && !strings.HasSuffix(nDN, store.base) {
		return fmt.Errorf("'%s' is not a descendant of '%s'", e.DN, store.base)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("error encoding entry '%s': %w", e.DN, err)
	}

	return store.db.Update(func(tx *bolt.Tx) error {
		dn2entry := tx.Bucket([]byte("dn2entry"))
		if dn2entry.Get([]byte(nDN)) != nil {
			return ErrEntryAlreadyExists
		}
		return dn2entry.Put([]byte(nDN), buf.Bytes())
	})
}

// EntryGet fetches a single entry by dn.
func (store *Store) EntryGet(dnString string) (*ldap.Entry, error) {
	nDN, err := NormalizeDN(dnString)
	if err != nil {
		return nil, fmt.Errorf("invalid dn '%s': %w", dnString, err)
	}

	var entry ldap.Entry
	err = store.db.View(func(tx *bolt.Tx) error {
		dn2entry := tx.Bucket([]byte("dn2entry"))
		if dn2entry == nil {
			return ErrEntryNotFound
		}
		entrybytes := dn2entry.Get([]byte(nDN))
		if entrybytes == nil {
			return ErrEntryNotFound
		}
		dec := gob.NewDecoder(bytes.NewBuffer(entrybytes))
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("error decoding entry '%s': %w", nDN, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DNs lists all stored entry dns in key order. The returned dns are the
// original ones as stored in the entries, not the folded keys.
func (store *Store) DNs() ([]string, error) {
	var dns []string
	err := store.db.View(func(tx *bolt.Tx) error {
		dn2entry := tx.Bucket([]byte("dn2entry"))
		if dn2entry == nil {
			return nil
		}
		return dn2entry.ForEach(func(_, entrybytes []byte) error {
			var entry ldap.Entry
			dec := gob.NewDecoder(bytes.NewBuffer(entrybytes))
			if err := dec.Decode(&entry); err != nil {
				return err
			}
			dns = append(dns, entry.DN)
			return nil
		})
	})
	return dns, err
}

// Path returns the path of the underlying database file.
func (store *Store) Path() string {
	return store.db.Path()
}

func (store *Store) Close() {
	store.db.Close()
}
