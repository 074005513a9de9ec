package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestUploadFileNameKeepsExtension(t *testing.T) {
	name := UploadFileName("me and my car.JPG")
	if !strings.HasSuffix(name, ".JPG") {
		t.Fatalf("extension lost: %q", name)
	}
	stem := strings.TrimSuffix(name, ".JPG")
	if _, err := strconv.ParseInt(stem, 10, 64); err != nil {
		t.Fatalf("stem is not a timestamp: %q", name)
	}
	if strings.ContainsAny(name, " /") {
		t.Fatalf("stored name must be a plain filename: %q", name)
	}
}

func TestRemoveUploadIfExists(t *testing.T) {
	dir := t.TempDir()

	// empty and missing names are no-ops
	RemoveUploadIfExists(dir, "")
	RemoveUploadIfExists(dir, "missing.png")

	path := filepath.Join(dir, "old.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}
	RemoveUploadIfExists(dir, "old.png")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("stored file should be removed, stat err: %v", err)
	}
}
