/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

// Package ldifparser implements a streaming parser for the LDIF text
// serialization. It turns a sequence of raw input lines into a sequence of
// structured parse events (begin-entry, attribute, end-entry), handling
// line folding, comment lines and base64 marked values. The parser is
// agnostic to where lines come from and where events go, it holds no
// buffered data beyond the current logical (unfolded) line.
package ldifparser

import (
	"encoding/base64"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-logr/logr"
)

// Flow reports whether the line source can produce further lines. End of
// input and entry closing are separately observable facts, a call which
// closes the final entry returns both the end-entry event and FlowEndOfInput.
type Flow int

const (
	FlowContinue Flow = iota
	FlowEndOfInput
)

type parseState struct {
	entryOpen bool
	lastDN    string
}

// Parser consumes one raw line per ConsumeNext call from its line source and
// emits at most one parse event per call. A Parser instance is not safe for
// concurrent use, independent streams require independent parsers.
type Parser struct {
	src    LineSource
	logger logr.Logger

	// Stats holds parse counters when enabled with SetStats.
	Stats *Stats

	state parseState
	line  int
}

// NewParser creates a Parser reading from the provided line source. The
// source is borrowed, an owned source (see OpenFileSource) remains the
// caller's to release. Options may be nil.
func NewParser(src LineSource, options *Options) *Parser {
	p := &Parser{
		src:    src,
		logger: logr.Discard(),
	}
	if options != nil && options.Logger.GetSink() != nil {
		p.logger = options.Logger
	}
	return p
}

// EntryOpen reports whether an entry is currently open, meaning a begin
// entry event was emitted whose end-entry event is still pending.
func (p *Parser) EntryOpen() bool {
	return p.state.entryOpen
}

// Line returns the number of raw lines consumed so far.
func (p *Parser) Line() int {
	return p.line
}

// SetStats enables or disables parse counters.
func (p *Parser) SetStats(enabled bool) {
	if enabled {
		p.Stats = &Stats{}
	} else {
		p.Stats = nil
	}
}

// ConsumeNext reads the next raw line, plus any folded continuation lines,
// and returns the resulting parse event, if any. Comment lines, blank lines
// outside of an entry and consumed continuations produce no event. End of
// input while an entry is open still emits the pending end-entry event.
//
// A failing line produces no event and leaves the parser state untouched,
// the host may keep calling ConsumeNext to continue with the next line.
func (p *Parser) ConsumeNext() (*Event, Flow, error) {
	line, err := p.src.ReadLine()
	if err != nil {
		if err == io.EOF {
			if p.state.entryOpen {
				p.state.entryOpen = false
				p.logger.V(1).Info("end entry at end of input", "dn", p.state.lastDN)
				return &Event{Type: EventEndEntry, DN: p.state.lastDN}, FlowEndOfInput, nil
			}
			return nil, FlowEndOfInput, nil
		}
		return nil, FlowContinue, err
	}
	p.line++
	startLine := p.line
	p.Stats.countLines(1)

	// Comment and blank handling takes precedence over colon splitting. A
	// comment can never occur mid fold, folding only continues the line
	// directly above it.
	if strings.HasPrefix(line, "#") {
		p.Stats.countComments(1)
		return nil, FlowContinue, nil
	}
	if line == "" {
		if p.state.entryOpen {
			p.state.entryOpen = false
			p.logger.V(1).Info("end entry", "dn", p.state.lastDN)
			return &Event{Type: EventEndEntry, DN: p.state.lastDN}, FlowContinue, nil
		}
		return nil, FlowContinue, nil
	}

	name, rest, found := strings.Cut(line, ":")
	if !found {
		return nil, FlowContinue, lineError(startLine, ErrMalformedLine)
	}
	isBase64 := strings.HasPrefix(rest, ":")
	if isBase64 {
		rest = rest[1:]
	}
	// Only the leading side of the first segment is trimmed, folded
	// continuations are appended verbatim after their single leading
	// space is stripped.
	value := strings.TrimLeft(rest, " \t")

	for {
		cont, peekErr := p.src.PeekContinuation()
		if peekErr != nil {
			return nil, FlowContinue, peekErr
		}
		if !cont {
			break
		}
		contLine, readErr := p.src.ReadLine()
		if readErr != nil {
			return nil, FlowContinue, readErr
		}
		p.line++
		p.Stats.countLines(1)
		p.Stats.countContinuations(1)
		value += contLine[1:]
	}

	if name == "dn" {
		dn := value
		if isBase64 {
			raw, decodeErr := base64.StdEncoding.DecodeString(value)
			if decodeErr != nil {
				return nil, FlowContinue, lineError(startLine, ErrInvalidBase64)
			}
			if !utf8.Valid(raw) {
				return nil, FlowContinue, lineError(startLine, ErrInvalidDNEncoding)
			}
			dn = string(raw)
		}
		p.state.lastDN = dn
		p.state.entryOpen = true
		p.Stats.countEntries(1)
		p.logger.V(1).Info("begin entry", "dn", dn)
		return &Event{Type: EventBeginEntry, DN: dn}, FlowContinue, nil
	}

	v := TextValue(value)
	if isBase64 {
		raw, decodeErr := base64.StdEncoding.DecodeString(value)
		if decodeErr != nil {
			return nil, FlowContinue, lineError(startLine, ErrInvalidBase64)
		}
		v = BinaryValue(raw)
	}
	if !p.state.entryOpen {
		return nil, FlowContinue, lineError(startLine, ErrAttributeOutsideEntry)
	}
	p.Stats.countAttributes(1)
	if v.IsBinary() {
		p.Stats.countBinaryValues(1)
	}
	return &Event{Type: EventAttribute, Name: name, Value: v}, FlowContinue, nil
}

// Next returns the next parse event, looping over ConsumeNext until an
// event is produced. It returns io.EOF once the stream is exhausted.
func (p *Parser) Next() (*Event, error) {
	for {
		event, flow, err := p.ConsumeNext()
		if err != nil {
			return nil, err
		}
		if event != nil {
			return event, nil
		}
		if flow == FlowEndOfInput {
			return nil, io.EOF
		}
	}
}
