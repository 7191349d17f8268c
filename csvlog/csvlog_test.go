package csvlog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	fields := []string{"a", "b", "c"}

	l, err := Open(path, fields)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Log(map[string]string{"a": "1", "b": "2", "c": "3"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Log(map[string]string{"c": "6", "unknown": "x"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening must not repeat the header.
	l, err = Open(path, fields)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Log(map[string]string{"b": "8"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := "a;b;c\n" +
		"1;2;3\n" +
		"n/a;n/a;6\n" +
		"n/a;8;n/a\n"
	if string(b) != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, string(b))
	}
}

func TestOpen_Error(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "log.csv"), []string{"a"}); err == nil {
		t.Error("Opening a file in a missing directory must fail")
	}
}
