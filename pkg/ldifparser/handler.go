/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifparser

// Handler receives parse events synchronously and in order. A non-nil error
// from any callback stops the run and is returned to the caller.
type Handler interface {
	BeginEntry(dn string) error
	Attribute(name string, value Value) error
	EndEntry(dn string) error
}

// Run drives the parser until end of input, dispatching every event to the
// provided handler. The first parse or handler error stops the run.
func (p *Parser) Run(h Handler) error {
	for {
		event, flow, err := p.ConsumeNext()
		if err != nil {
			return err
		}
		if event != nil {
			if err = dispatch(h, event); err != nil {
				return err
			}
		}
		if flow == FlowEndOfInput {
			return nil
		}
	}
}

func dispatch(h Handler, event *Event) error {
	switch event.Type {
	case EventBeginEntry:
		return h.BeginEntry(event.DN)
	case EventAttribute:
		return h.Attribute(event.Name, event.Value)
	case EventEndEntry:
		return h.EndEntry(event.DN)
	default:
		return nil
	}
}

// ParseFile opens the named file, runs the provided handler over its parse
// events and releases the file on all exit paths. Options may be nil.
func ParseFile(fn string, h Handler, options *Options) error {
	src, err := OpenFileSource(fn)
	if err != nil {
		return err
	}
	defer src.Close()

	return NewParser(src, options).Run(h)
}
