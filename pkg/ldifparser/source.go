/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifparser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// LineSource yields raw input lines one at a time. The parser consumes lines
// strictly in order and never looks further ahead than PeekContinuation.
type LineSource interface {
	// ReadLine returns the next raw line with its line ending stripped.
	// It returns io.EOF after the last line.
	ReadLine() (string, error)

	// PeekContinuation reports whether the next line starts with a single
	// leading space, without consuming it. It reports false at end of
	// input.
	PeekContinuation() (bool, error)
}

type readerSource struct {
	reader *bufio.Reader
}

// NewReaderSource wraps the provided reader as a LineSource. The reader is
// borrowed, the caller remains responsible for any underlying resource.
// Both \n and \r\n line endings are accepted, as is a final line without a
// trailing newline.
func NewReaderSource(r io.Reader) LineSource {
	return &readerSource{
		reader: bufio.NewReader(r),
	}
}

func (s *readerSource) ReadLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// Final line without newline.
			return line, nil
		}
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (s *readerSource) PeekContinuation() (bool, error) {
	b, err := s.reader.Peek(1)
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return b[0] == ' ', nil
}

// FileSource is an owned LineSource backed by a file. Close releases the
// underlying file.
type FileSource struct {
	LineSource

	f *os.File
}

// OpenFileSource opens the named file for reading as a LineSource. The
// returned source owns the file, the caller must Close it.
func OpenFileSource(fn string) (*FileSource, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	return &FileSource{
		LineSource: NewReaderSource(f),

		f: f,
	}, nil
}

func (s *FileSource) Close() error {
	return s.f.Close()
}
