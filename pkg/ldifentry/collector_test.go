package ldifentry

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/go-ldap/ldap/v3"

	"github.com/libregraph/ldifstream/pkg/ldifparser"
)

const testLDIF = `dn: ou=users,dc=example,dc=com
objectClass: organizationalUnit
ou: users

dn: uid=jonas,ou=users,dc=example,dc=com
objectClass: inetOrgPerson
uid: jonas
cn: Jonas Brekke
mail: jonas@example.com
mail: jonas.brekke@example.com
`

func collect(t *testing.T, input string, options *Options) *Collector {
	t.Helper()

	c := NewCollector(options)
	p := ldifparser.NewParser(ldifparser.NewReaderSource(strings.NewReader(input)), nil)
	if err := p.Run(c); err != nil {
		t.Fatalf("Unexpected run error: %s", err)
	}
	return c
}

func TestCollector(t *testing.T) {
	c := collect(t, testLDIF, nil)

	entries := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries got %d", len(entries))
	}

	user := entries[1]
	if user.DN != "uid=jonas,ou=users,dc=example,dc=com" {
		t.Errorf("Unexpected dn %q", user.DN)
	}
	mails := user.GetAttributeValues("mail")
	if len(mails) != 2 || mails[0] != "jonas@example.com" || mails[1] != "jonas.brekke@example.com" {
		t.Errorf("Repeated attribute lines should merge in order, got %v", mails)
	}
}

func TestCollectorBinaryValues(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	input := "dn: uid=photo,dc=example,dc=com\njpegPhoto:: " +
		base64.StdEncoding.EncodeToString(payload) + "\n"

	c := collect(t, input, nil)
	entry := c.Entries()[0]
	raw := entry.GetRawAttributeValue("jpegPhoto")
	if !bytes.Equal(raw, payload) {
		t.Errorf("Expected raw bytes %x got %x", payload, raw)
	}
}

func TestCollectorOnEntry(t *testing.T) {
	var streamed []string
	options := &Options{
		OnEntry: func(entry *ldap.Entry) error {
			streamed = append(streamed, entry.DN)
			return nil
		},
	}

	c := collect(t, testLDIF, options)
	if len(c.Entries()) != 0 {
		t.Errorf("OnEntry hook should prevent accumulation, got %d entries", len(c.Entries()))
	}
	if len(streamed) != 2 {
		t.Errorf("Expected 2 streamed entries got %d", len(streamed))
	}
}

func TestCollectorIndex(t *testing.T) {
	index := NewIndexMapRegister()
	collect(t, testLDIF, &Options{Index: index})

	entries, found := index.Load("uid", "eq", "JONAS")
	if !found || len(entries) != 1 {
		t.Fatalf("Expected one indexed entry for uid=jonas, found=%v len=%d", found, len(entries))
	}
	if entries[0].DN != "uid=jonas,ou=users,dc=example,dc=com" {
		t.Errorf("Unexpected indexed entry %q", entries[0].DN)
	}

	if _, found = index.Load("description", "eq", "whatever"); found {
		t.Errorf("Unindexed attribute should not load")
	}
}

func TestCollectorInventory(t *testing.T) {
	inventory := NewInventory()
	collect(t, testLDIF, &Options{Inventory: inventory})

	if inventory.Len() != 5 {
		t.Errorf("Expected 5 distinct attribute names got %d", inventory.Len())
	}

	var names []string
	var mailCount uint64
	inventory.Walk(func(name string, count uint64) bool {
		names = append(names, name)
		if name == "mail" {
			mailCount = count
		}
		return false
	})
	if mailCount != 2 {
		t.Errorf("Expected mail count 2 got %d", mailCount)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Walk order not sorted: %v", names)
		}
	}

	var prefixed int
	inventory.WalkPrefix("obj", func(name string, count uint64) bool {
		prefixed++
		return false
	})
	if prefixed != 1 {
		t.Errorf("Expected 1 name with prefix obj got %d", prefixed)
	}
}

func TestTreeFromEntries(t *testing.T) {
	c := collect(t, testLDIF, nil)

	tree, err := TreeFromEntries(c.Entries())
	if err != nil {
		t.Fatalf("Unexpected tree error: %s", err)
	}
	if tree.Len() != 2 {
		t.Errorf("Expected tree length 2 got %d", tree.Len())
	}

	v, found := tree.Get([]byte("uid=jonas,ou=users,dc=example,dc=com"))
	if !found || v == nil {
		t.Errorf("Expected to find user entry in tree")
	}
}

func TestTreeFromEntriesDuplicate(t *testing.T) {
	entries := []*ldap.Entry{
		{DN: "uid=dup,dc=example,dc=com"},
		{DN: "uid=DUP,dc=example,dc=com"},
	}

	if _, err := TreeFromEntries(entries); err == nil {
		t.Errorf("Expected duplicate dn error")
	}
}
