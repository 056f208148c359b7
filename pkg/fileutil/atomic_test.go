package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"text", []byte("hello world\n"), 0644},
		{"empty", nil, 0644},
		{"binary", []byte{0x00, 0x01, 0x02, 0xFF}, 0600},
		{"executable", []byte("#!/bin/sh\necho hi\n"), 0755},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading back: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != tt.perm {
				t.Errorf("mode = %o, want %o", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestAtomicWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(path, []byte("original\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(path, []byte("replaced\n"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "replaced\n" {
		t.Errorf("content = %q", got)
	}
}

func TestAtomicWriteFileMissingParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "out")

	if err := AtomicWriteFile(path, []byte("data"), 0600); err == nil {
		t.Fatal("expected error when parent directory is missing")
	}

	// A failed write must not leave a temp file behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := AtomicWriteJSON(path, map[string]int{"count": 42}); err != nil {
		t.Fatalf("AtomicWriteJSON() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{\n  \"count\": 42\n}\n" {
		t.Errorf("content = %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %o, want 0644", info.Mode().Perm())
	}
}

func TestAtomicWriteJSONMarshalError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := AtomicWriteJSON(path, make(chan int)); err == nil {
		t.Fatal("expected error for unmarshalable value")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("file should not exist after a marshal error")
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	value := struct {
		Name  string
		Items []string
	}{Name: "test", Items: []string{"a", "b"}}

	if err := AtomicWriteYAML(path, value); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "name: test\nitems:\n    - a\n    - b\n"
	if string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if got[len(got)-1] != '\n' {
		t.Error("YAML output should end with a newline")
	}
}

func TestAtomicWriteYAMLMarshalPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	// yaml.Marshal panics on funcs; the writer must turn that into an error.
	if err := AtomicWriteYAML(path, func() {}); err == nil {
		t.Fatal("expected error for unmarshalable value")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("file should not exist after a marshal error")
	}
}
