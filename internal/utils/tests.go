package util

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func CreateTempFile(t *testing.T) (string, func()) {
	t.Helper()
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, fmt.Sprintf("pagesim-test-%d.yaml", rand.Intn(100)+10))
	return tempFile, func() {
		os.Remove(tempFile)
	}
}

// WriteTempFile creates a temp file holding content and returns its path.
func WriteTempFile(t *testing.T, content string) string {
	t.Helper()
	path, cleanup := CreateTempFile(t)
	t.Cleanup(cleanup)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
