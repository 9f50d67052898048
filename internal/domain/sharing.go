package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// DefaultAuthor is used for posts created without a selected participant.
const DefaultAuthor = "匿名"

// DefaultCategory is the category of a post created without one.
const DefaultCategory = "其他"

// editedSuffix marks the timestamp of a post that was changed after publishing.
const editedSuffix = " (已編輯)"

// Post is an entry in the shared discussion feed. Trip optionally holds a
// snapshot of the trip document at the time the post was written; it is
// kept as raw JSON because older posts may embed older document shapes.
type Post struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Content   string          `json:"content"`
	Trip      json.RawMessage `json:"trip,omitempty"`
	Category  string          `json:"category"`
	Timestamp string          `json:"timestamp"`
	Likes     int             `json:"likes"`
	Comments  []Comment       `json:"comments"`
	Views     int             `json:"views"`
	Tags      []string        `json:"tags"`
}

// Comment is a reply to a Post.
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
}

// NewPostID returns a fresh post identifier.
func NewPostID() string { return uuid.NewString() }

// MarkEdited returns ts with the edited marker appended exactly once.
func MarkEdited(ts string) string {
	if strings.HasSuffix(ts, editedSuffix) {
		return ts
	}
	return ts + editedSuffix
}

// CleanTags trims each tag and drops the blank ones.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NormalizePosts replaces nil lists inside posts with empty ones.
func NormalizePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		if p.Comments == nil {
			p.Comments = []Comment{}
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		out[i] = p
	}
	return out
}
