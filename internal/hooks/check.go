package hooks

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Check reports whether command can be started from workDir. Bare names are
// looked up on PATH; anything with a path separator must be an executable
// file, resolved against workDir when relative.
func Check(command, workDir string) error {
	if command == "" {
		return nil
	}
	if !strings.ContainsAny(command, `/\`) {
		if _, err := exec.LookPath(command); err != nil {
			return fmt.Errorf("hook command %q not found on PATH", command)
		}
		return nil
	}

	path := command
	if !filepath.IsAbs(path) && workDir != "" {
		path = filepath.Join(workDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("hook command: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("hook command is a directory: %s", path)
	}
	if !isExecutable(path, info.Mode()) {
		return fmt.Errorf("hook command is not executable: %s", path)
	}
	return nil
}

func isExecutable(path string, mode os.FileMode) bool {
	if runtime.GOOS == "windows" {
		return windowsExecutableExtensions()[strings.ToLower(filepath.Ext(path))]
	}
	return mode&0111 != 0
}

// windowsExecutableExtensions parses PATHEXT into a set of lowercase
// extensions with the leading dot.
func windowsExecutableExtensions() map[string]bool {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	exts := map[string]bool{}
	for _, ext := range strings.Split(pathext, ";") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return exts
}
