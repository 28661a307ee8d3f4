package logging

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// captureStderr runs fn with stderr redirected and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestConsoleLogger_VerboseEnabled(t *testing.T) {
	out := captureStderr(t, func() {
		NewConsoleLogger(true).Verbose("read %d rows", 3)
	})
	if out != "[VERBOSE] read 3 rows\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestConsoleLogger_VerboseDisabled(t *testing.T) {
	out := captureStderr(t, func() {
		NewConsoleLogger(false).Verbose("read %d rows", 3)
	})
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestConsoleLogger_InfoAndError(t *testing.T) {
	out := captureStderr(t, func() {
		l := NewConsoleLogger(false)
		l.Info("loaded %d rows", 7)
		l.Error("load failed")
	})
	want := "loaded 7 rows\n[ERROR] load failed\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}
