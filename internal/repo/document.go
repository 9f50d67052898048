// Package repo contains all persistence logic for the trip planner.
// The trip and the sharing feed are each stored as one JSON document that is
// always read and replaced as a whole. A Document is the storage backend for
// one such blob (a file on disk or a row in Postgres); TripRepo and PostRepo
// add JSON encoding and the domain-level error mapping on top.
// No business logic lives here.
package repo

import (
	"context"
	"errors"
)

// Names of the documents in a shared backend (e.g. the Postgres documents table).
const (
	TripDocument    = "trip"
	SharingDocument = "sharing"
)

// ErrDocumentMissing is returned by Document.Read when nothing has been
// written yet. Repos translate it into the domain-level meaning.
var ErrDocumentMissing = errors.New("document missing")

// Document is a single named JSON blob that is replaced atomically.
type Document interface {
	// Read returns the stored bytes, or ErrDocumentMissing.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored bytes. A reader never observes a partial
	// write: it sees either the previous or the new content.
	Write(ctx context.Context, data []byte) error
}
