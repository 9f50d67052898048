package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/events"
	"github.com/pkordes/trip-planner/internal/repo"
)

// PostInput carries the user-editable fields of a post.
type PostInput struct {
	Title    string
	Author   string
	Content  string
	Category string
	Tags     []string
}

// CommentInput carries the fields of a new comment.
type CommentInput struct {
	Author  string
	Content string
}

// PublishInput customises the post created by PublishTrip. Every field is
// optional.
type PublishInput struct {
	Title   string
	Author  string
	Content string
}

// publishCategory is the category of posts created from the trip itself.
const publishCategory = "行程"

// SharingService implements the operations on the sharing feed.
type SharingService struct {
	posts  repo.PostRepo
	trips  repo.TripRepo
	notify notifier
}

// NewSharingService constructs a SharingService. trips is only used by
// PublishTrip; pub and log may be nil.
func NewSharingService(posts repo.PostRepo, trips repo.TripRepo, pub events.Publisher, log *slog.Logger) *SharingService {
	return &SharingService{posts: posts, trips: trips, notify: newNotifier(pub, log)}
}

// List returns the whole feed, newest first as stored.
func (s *SharingService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SharingService.List: %w", err)
	}
	return posts, nil
}

// ListPaged returns one page of the feed and the total number of posts.
func (s *SharingService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Post, int, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.SharingService.ListPaged: %w", err)
	}
	lo, hi := p.Bounds(len(posts))
	return posts[lo:hi], len(posts), nil
}

// Replace stores posts as the whole feed.
func (s *SharingService) Replace(ctx context.Context, posts []domain.Post) error {
	if err := s.posts.Save(ctx, posts); err != nil {
		return fmt.Errorf("service.SharingService.Replace: %w", err)
	}
	s.notify.changed(ctx, repo.SharingDocument, "replace")
	return nil
}

// AddPost validates in and prepends a new post to the feed.
func (s *SharingService) AddPost(ctx context.Context, in PostInput) (domain.Post, error) {
	post, err := s.newPost(in)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.AddPost: %w", err)
	}
	return s.prepend(ctx, "AddPost", "add_post", post)
}

// UpdatePost rewrites the editable fields of a post and marks it edited.
// Likes, views and comments are kept.
func (s *SharingService) UpdatePost(ctx context.Context, id string, in PostInput) (domain.Post, error) {
	title, content := strings.TrimSpace(in.Title), strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return domain.Post{}, fmt.Errorf("service.SharingService.UpdatePost: %w: title and content are required", domain.ErrValidation)
	}
	return s.updatePost(ctx, "UpdatePost", "update_post", id, func(p *domain.Post) error {
		p.Title = title
		p.Content = content
		if a := strings.TrimSpace(in.Author); a != "" {
			p.Author = a
		}
		if c := strings.TrimSpace(in.Category); c != "" {
			p.Category = c
		}
		if in.Tags != nil {
			p.Tags = domain.CleanTags(in.Tags)
		}
		p.Timestamp = domain.MarkEdited(s.notify.timestamp())
		return nil
	})
}

// DeletePost removes a post from the feed.
func (s *SharingService) DeletePost(ctx context.Context, id string) error {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return fmt.Errorf("service.SharingService.DeletePost: %w", err)
	}
	i := postIndex(posts, id)
	if i < 0 {
		return fmt.Errorf("service.SharingService.DeletePost: post %s: %w", id, domain.ErrNotFound)
	}
	if err := s.posts.Save(ctx, slices.Delete(posts, i, i+1)); err != nil {
		return fmt.Errorf("service.SharingService.DeletePost: %w", err)
	}
	s.notify.changed(ctx, repo.SharingDocument, "delete_post")
	return nil
}

// AddComment appends a comment to a post.
func (s *SharingService) AddComment(ctx context.Context, postID string, in CommentInput) (domain.Post, error) {
	author, content := strings.TrimSpace(in.Author), strings.TrimSpace(in.Content)
	if author == "" || content == "" {
		return domain.Post{}, fmt.Errorf("service.SharingService.AddComment: %w: author and content are required", domain.ErrValidation)
	}
	return s.updatePost(ctx, "AddComment", "add_comment", postID, func(p *domain.Post) error {
		p.Comments = append(p.Comments, domain.Comment{
			ID:        domain.NewPostID(),
			Author:    author,
			Content:   content,
			Timestamp: s.notify.timestamp(),
		})
		return nil
	})
}

// LikePost increments a post's like counter.
func (s *SharingService) LikePost(ctx context.Context, id string) (domain.Post, error) {
	return s.updatePost(ctx, "LikePost", "like_post", id, func(p *domain.Post) error {
		p.Likes++
		return nil
	})
}

// ViewPost increments a post's view counter.
func (s *SharingService) ViewPost(ctx context.Context, id string) (domain.Post, error) {
	return s.updatePost(ctx, "ViewPost", "view_post", id, func(p *domain.Post) error {
		p.Views++
		return nil
	})
}

// LikeComment increments the like counter of one comment on a post.
func (s *SharingService) LikeComment(ctx context.Context, postID, commentID string) (domain.Post, error) {
	return s.updatePost(ctx, "LikeComment", "like_comment", postID, func(p *domain.Post) error {
		i := slices.IndexFunc(p.Comments, func(c domain.Comment) bool { return c.ID == commentID })
		if i < 0 {
			return fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
		}
		p.Comments[i].Likes++
		return nil
	})
}

// PublishTrip snapshots the current trip into a new post at the top of the
// feed. Title and content default to a summary of the trip.
func (s *SharingService) PublishTrip(ctx context.Context, in PublishInput) (domain.Post, error) {
	trip, err := s.trips.Load(ctx)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.PublishTrip: %w", err)
	}
	snapshot, err := json.Marshal(trip)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.PublishTrip: encode trip: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("行程 %s → %s", trip.Meta.StartDate, trip.Meta.EndDate)
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		content = tripSummary(trip)
	}

	post, err := s.newPost(PostInput{Title: title, Author: in.Author, Content: content, Category: publishCategory})
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.PublishTrip: %w", err)
	}
	post.Trip = snapshot
	return s.prepend(ctx, "PublishTrip", "publish_trip", post)
}

// newPost validates in and builds a post with fresh counters.
func (s *SharingService) newPost(in PostInput) (domain.Post, error) {
	title, content := strings.TrimSpace(in.Title), strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return domain.Post{}, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = domain.DefaultAuthor
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}
	return domain.Post{
		ID:        domain.NewPostID(),
		Title:     title,
		Author:    author,
		Content:   content,
		Category:  category,
		Timestamp: s.notify.timestamp(),
		Comments:  []domain.Comment{},
		Tags:      domain.CleanTags(in.Tags),
	}, nil
}

func (s *SharingService) prepend(ctx context.Context, method, operation string, post domain.Post) (domain.Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.%s: %w", method, err)
	}
	if err := s.posts.Save(ctx, append([]domain.Post{post}, posts...)); err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.%s: %w", method, err)
	}
	s.notify.changed(ctx, repo.SharingDocument, operation)
	return post, nil
}

// updatePost loads the feed, applies fn to the post with the given id and
// saves the feed. Nothing is written when fn fails.
func (s *SharingService) updatePost(ctx context.Context, method, operation, id string, fn func(*domain.Post) error) (domain.Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.%s: %w", method, err)
	}
	i := postIndex(posts, id)
	if i < 0 {
		return domain.Post{}, fmt.Errorf("service.SharingService.%s: post %s: %w", method, id, domain.ErrNotFound)
	}
	if err := fn(&posts[i]); err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.%s: %w", method, err)
	}
	if err := s.posts.Save(ctx, posts); err != nil {
		return domain.Post{}, fmt.Errorf("service.SharingService.%s: %w", method, err)
	}
	s.notify.changed(ctx, repo.SharingDocument, operation)
	return posts[i], nil
}

func postIndex(posts []domain.Post, id string) int {
	return slices.IndexFunc(posts, func(p domain.Post) bool { return p.ID == id })
}

// tripSummary is the default body of a published trip post.
func tripSummary(t domain.Trip) string {
	booked := 0
	for _, d := range t.Days {
		for _, m := range d.Meals {
			if m.Booking.State() == domain.BookingBooked {
				booked++
			}
		}
	}
	return fmt.Sprintf("%s → %s，共 %d 天，%d 餐（已訂位 %d）",
		t.Meta.StartDate, t.Meta.EndDate, len(t.Days), t.MealCount(), booked)
}
