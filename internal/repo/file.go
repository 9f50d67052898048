package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// fileDocument stores a document as a single file. Writes go to a temp file
// in the same directory which is then renamed over the target, so a crash
// mid-write leaves the previous file intact. There is no locking: when two
// writers race, the last rename wins.
type fileDocument struct {
	path string
}

// NewFileDocument returns a Document backed by the file at path.
// The parent directory is created on the first write.
func NewFileDocument(path string) Document {
	return &fileDocument{path: path}
}

// Read returns the file contents, or ErrDocumentMissing if the file does not exist.
func (d *fileDocument) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDocumentMissing
		}
		return nil, fmt.Errorf("repo.fileDocument.Read: %w", err)
	}
	return data, nil
}

// Write atomically replaces the file with data.
func (d *fileDocument) Write(ctx context.Context, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("repo.fileDocument.Write: create dir: %w", err)
	}

	// A unique temp name per write keeps concurrent writers from truncating
	// each other's half-written temp file.
	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("repo.fileDocument.Write: create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("repo.fileDocument.Write: write temp: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("repo.fileDocument.Write: sync temp: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("repo.fileDocument.Write: close temp: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("repo.fileDocument.Write: chmod temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("repo.fileDocument.Write: rename: %w", err)
	}
	return nil
}
