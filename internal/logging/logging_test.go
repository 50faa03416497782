package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDir(t *testing.T) {
	t.Setenv("LOGS_FOLDER", "")
	if got, want := ResolveDir("/opt/drops"), filepath.Join("/opt/drops", "logs"); got != want {
		t.Errorf("ResolveDir() = %q, want %q", got, want)
	}
	if got := ResolveDir(""); got != "logs" {
		t.Errorf("ResolveDir(\"\") = %q, want logs", got)
	}

	t.Setenv("LOGS_FOLDER", "/var/log/drops")
	if got := ResolveDir("/opt/drops"); got != "/var/log/drops" {
		t.Errorf("ResolveDir() with LOGS_FOLDER = %q, want /var/log/drops", got)
	}
}

func TestNewFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	w, err := newFileWriter(dir)
	if err != nil {
		t.Fatalf("newFileWriter() error = %v", err)
	}
	if want := filepath.Join(dir, LogFileName); w.Filename != want {
		t.Errorf("Filename = %q, want %q", w.Filename, want)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Error("write probe was left behind")
	}
}

func TestNewFileWriter_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := newFileWriter(filepath.Join(file, "logs")); err == nil {
		t.Error("newFileWriter() under a regular file error = nil, want error")
	}
}
