package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir returns the runtime directory used for floatpane's lock file. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/floatpane-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/floatpane-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// LockPath returns the daemon's single-owner lock file path.
func LockPath() (string, error) {
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, "floatpane.lock"), nil
}
