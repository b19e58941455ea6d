/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifparser

// Value holds a single attribute value. A value is binary when the source
// line marked it with a double colon, in which case the bytes are the raw
// base64-decoded payload. Otherwise the value is literal text.
type Value struct {
	data   []byte
	binary bool
}

// TextValue creates a literal text value.
func TextValue(s string) Value {
	return Value{data: []byte(s)}
}

// BinaryValue creates a binary value from raw bytes.
func BinaryValue(b []byte) Value {
	return Value{data: b, binary: true}
}

// IsBinary reports whether the value came from a base64 marked line.
func (v Value) IsBinary() bool {
	return v.binary
}

// Bytes returns the raw value bytes.
func (v Value) Bytes() []byte {
	return v.data
}

func (v Value) String() string {
	return string(v.data)
}

// EventType identifies the kind of a parse event.
type EventType int

const (
	EventBeginEntry EventType = iota + 1
	EventAttribute
	EventEndEntry
)

func (et EventType) String() string {
	switch et {
	case EventBeginEntry:
		return "begin-entry"
	case EventAttribute:
		return "attribute"
	case EventEndEntry:
		return "end-entry"
	default:
		return "unknown"
	}
}

// Event is a single structured parse event. DN is set for begin-entry and
// end-entry events, Name and Value for attribute events.
type Event struct {
	Type EventType

	DN    string
	Name  string
	Value Value
}
