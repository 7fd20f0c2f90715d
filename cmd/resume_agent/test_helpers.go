package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}


// runBinary runs the CLI with args and returns its combined output
func runBinary(t *testing.T, binaryPath string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// writeFile creates name under dir with content and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// mustRun runs the CLI and fails the test on a non-zero exit
func mustRun(t *testing.T, binaryPath string, args ...string) string {
	t.Helper()
	output, err := runBinary(t, binaryPath, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, output)
	}
	return output
}
