package hooks

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestWindowsExecutableExtensions(t *testing.T) {
	tests := []struct {
		name     string
		pathext  string
		wantExts []string
	}{
		{"default PATHEXT", "", []string{".com", ".exe", ".bat", ".cmd"}},
		{"custom PATHEXT", ".COM;.EXE;.PS1", []string{".com", ".exe", ".ps1"}},
		{"PATHEXT without dots", "COM;EXE;BAT", []string{".com", ".exe", ".bat"}},
		{"mixed format with spaces", ".COM; .EXE ; .BAT", []string{".com", ".exe", ".bat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PATHEXT", tt.pathext)
			got := windowsExecutableExtensions()
			for _, ext := range tt.wantExts {
				if !got[ext] {
					t.Errorf("missing extension %q in %v", ext, got)
				}
			}
			if len(got) != len(tt.wantExts) {
				t.Errorf("got %d extensions, want %d", len(got), len(tt.wantExts))
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX file modes")
	}
	dir := t.TempDir()
	exe := filepath.Join(dir, "hook.sh")
	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(plain, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		command string
		workDir string
		wantErr string
	}{
		{"empty", "", "", ""},
		{"absolute executable", exe, "", ""},
		{"relative to work dir", "./hook.sh", dir, ""},
		{"on PATH", "sh", "", ""},
		{"not on PATH", "taskboard-no-such-hook", "", "not found on PATH"},
		{"missing file", filepath.Join(dir, "missing.sh"), "", "no such file"},
		{"directory", dir, "", "is a directory"},
		{"not executable", plain, "", "not executable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.command, tt.workDir)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Check(%q): unexpected error %v", tt.command, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Check(%q): got %v, want error containing %q", tt.command, err, tt.wantErr)
			}
		})
	}
}
