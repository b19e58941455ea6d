package ldifparser

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReaderSourceLineEndings(t *testing.T) {
	src := NewReaderSource(strings.NewReader("one\r\ntwo\nthree"))

	for _, want := range []string{"one", "two", "three"} {
		line, err := src.ReadLine()
		if err != nil {
			t.Fatalf("Unexpected read error: %s", err)
		}
		if line != want {
			t.Errorf("Expected %q got %q", want, line)
		}
	}
	if _, err := src.ReadLine(); err != io.EOF {
		t.Errorf("Expected io.EOF got %v", err)
	}
}

func TestReaderSourcePeekContinuation(t *testing.T) {
	src := NewReaderSource(strings.NewReader("first\n continuation\nsecond\n"))

	if _, err := src.ReadLine(); err != nil {
		t.Fatalf("Unexpected read error: %s", err)
	}

	cont, err := src.PeekContinuation()
	if err != nil {
		t.Fatalf("Unexpected peek error: %s", err)
	}
	if !cont {
		t.Errorf("Expected continuation after first line")
	}

	// Peek must not consume.
	line, _ := src.ReadLine()
	if line != " continuation" {
		t.Errorf("Peek consumed input, got %q", line)
	}

	cont, _ = src.PeekContinuation()
	if cont {
		t.Errorf("Unexpected continuation before second line")
	}
}

func TestReaderSourcePeekAtEOF(t *testing.T) {
	src := NewReaderSource(strings.NewReader("only\n"))

	if _, err := src.ReadLine(); err != nil {
		t.Fatalf("Unexpected read error: %s", err)
	}
	cont, err := src.PeekContinuation()
	if err != nil {
		t.Errorf("Peek at end of input should not error, got %v", err)
	}
	if cont {
		t.Errorf("Peek at end of input reported continuation")
	}
}

func TestParseFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.ldif")
	content := "dn: cn=file,dc=x\ncn: file\n"
	if err := os.WriteFile(fn, []byte(content), 0o600); err != nil {
		t.Fatalf("Error writing test file: %s", err)
	}

	h := &recordingHandler{}
	if err := ParseFile(fn, h, nil); err != nil {
		t.Fatalf("Unexpected parse error: %s", err)
	}
	if len(h.events) != 3 {
		t.Errorf("Expected 3 events got %d", len(h.events))
	}
}

func TestParseFileMissing(t *testing.T) {
	if err := ParseFile(filepath.Join(t.TempDir(), "missing.ldif"), &recordingHandler{}, nil); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
