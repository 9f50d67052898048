package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// PostRepo defines the persistence operations for the sharing feed, an
// array of posts stored as one document.
type PostRepo interface {
	// Load returns every post. A feed that has never been written is empty.
	Load(ctx context.Context) ([]domain.Post, error)

	// Save replaces the whole feed.
	Save(ctx context.Context, posts []domain.Post) error
}

type postRepo struct {
	doc Document
}

// NewPostRepo constructs a PostRepo on top of the given document backend.
func NewPostRepo(doc Document) PostRepo {
	return &postRepo{doc: doc}
}

// Load reads and decodes the feed. Always returns a non-nil slice on success.
func (r *postRepo) Load(ctx context.Context) ([]domain.Post, error) {
	data, err := r.doc.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrDocumentMissing) {
			return []domain.Post{}, nil
		}
		return nil, fmt.Errorf("repo.PostRepo.Load: %w", err)
	}

	var posts []domain.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("repo.PostRepo.Load: decode: %w", err)
	}
	return domain.NormalizePosts(posts), nil
}

// Save encodes the feed as an indented JSON array and replaces the document.
// A nil slice is stored as an empty array.
func (r *postRepo) Save(ctx context.Context, posts []domain.Post) error {
	if posts == nil {
		posts = []domain.Post{}
	}
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("repo.PostRepo.Save: encode: %w", err)
	}
	if err := r.doc.Write(ctx, data); err != nil {
		return fmt.Errorf("repo.PostRepo.Save: %w", err)
	}
	return nil
}
