package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// DataPaths returns paths for a trip document and a sharing document inside
// a fresh per-test directory. Neither file exists yet.
func DataPaths(t *testing.T) (tripPath, sharingPath string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "data", "trip.json"), filepath.Join(dir, "data", "sharing.json")
}

// ReadJSON decodes the file at path into v, failing the test on any error.
func ReadJSON(t *testing.T, path string, v any) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testutil.ReadJSON: read %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("testutil.ReadJSON: decode %s: %v", path, err)
	}
}

// ModTime returns the modification time of path in nanoseconds, failing
// the test if the file cannot be stat'ed.
func ModTime(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("testutil.ModTime: %v", err)
	}
	return info.ModTime().UnixNano()
}
