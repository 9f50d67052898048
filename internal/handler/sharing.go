package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

const (
	msgReadSharing   = "Failed to read sharing data"
	msgSaveSharing   = "Failed to save sharing data"
	msgPostsNotArray = "Posts must be an array"
)

type postsResponse struct {
	OK    bool          `json:"ok"`
	Posts []domain.Post `json:"posts"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type pagedPostsResponse struct {
	OK         bool          `json:"ok"`
	Posts      []domain.Post `json:"posts"`
	Pagination pagination    `json:"pagination"`
}

type postResponse struct {
	OK   bool        `json:"ok"`
	Post domain.Post `json:"post"`
}

type replaceSharingRequest struct {
	Posts json.RawMessage `json:"posts"`
}

type postRequest struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (p postRequest) input() service.PostInput {
	return service.PostInput{Title: p.Title, Author: p.Author, Content: p.Content, Category: p.Category, Tags: p.Tags}
}

type commentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

type publishRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// GetSharing handles GET /api/sharing.
func (s *Server) GetSharing(w http.ResponseWriter, r *http.Request) {
	posts, err := s.sharing.List(r.Context())
	if err != nil {
		s.internalError(w, r, err, msgReadSharing)
		return
	}
	writeJSON(w, http.StatusOK, postsResponse{OK: true, Posts: posts})
}

// ReplaceSharing handles POST /api/sharing: the body's posts array becomes
// the whole feed.
func (s *Server) ReplaceSharing(w http.ResponseWriter, r *http.Request) {
	var req replaceSharingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !bytes.HasPrefix(bytes.TrimSpace(req.Posts), []byte("[")) {
		writeMessage(w, http.StatusBadRequest, msgPostsNotArray)
		return
	}
	var posts []domain.Post
	if err := json.Unmarshal(req.Posts, &posts); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if err := s.sharing.Replace(r.Context(), posts); err != nil {
		s.internalError(w, r, err, msgSaveSharing)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{OK: true})
}

// ListPosts handles GET /api/sharing/posts.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	posts, total, err := s.sharing.ListPaged(r.Context(), params)
	if err != nil {
		s.internalError(w, r, err, msgReadSharing)
		return
	}
	writeJSON(w, http.StatusOK, pagedPostsResponse{
		OK:    true,
		Posts: posts,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreatePost handles POST /api/sharing/posts.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.respondPost(w, r, http.StatusCreated)(s.sharing.AddPost(r.Context(), req.input()))
}

// UpdatePost handles PUT /api/sharing/posts/{id}.
func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.respondPost(w, r, http.StatusOK)(s.sharing.UpdatePost(r.Context(), chi.URLParam(r, "id"), req.input()))
}

// DeletePost handles DELETE /api/sharing/posts/{id}.
func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.sharing.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{OK: true})
}

// AddComment handles POST /api/sharing/posts/{id}/comments.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := service.CommentInput{Author: req.Author, Content: req.Content}
	s.respondPost(w, r, http.StatusCreated)(s.sharing.AddComment(r.Context(), chi.URLParam(r, "id"), in))
}

// LikePost handles POST /api/sharing/posts/{id}/like.
func (s *Server) LikePost(w http.ResponseWriter, r *http.Request) {
	s.respondPost(w, r, http.StatusOK)(s.sharing.LikePost(r.Context(), chi.URLParam(r, "id")))
}

// ViewPost handles POST /api/sharing/posts/{id}/view.
func (s *Server) ViewPost(w http.ResponseWriter, r *http.Request) {
	s.respondPost(w, r, http.StatusOK)(s.sharing.ViewPost(r.Context(), chi.URLParam(r, "id")))
}

// LikeComment handles POST /api/sharing/posts/{id}/comments/{cid}/like.
func (s *Server) LikeComment(w http.ResponseWriter, r *http.Request) {
	s.respondPost(w, r, http.StatusOK)(s.sharing.LikeComment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cid")))
}

// PublishTrip handles POST /api/sharing/publish. The body is optional.
func (s *Server) PublishTrip(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		if isTooLarge(err) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	in := service.PublishInput{Title: req.Title, Author: req.Author, Content: req.Content}
	s.respondPost(w, r, http.StatusCreated)(s.sharing.PublishTrip(r.Context(), in))
}

func (s *Server) respondPost(w http.ResponseWriter, r *http.Request, status int) func(domain.Post, error) {
	return func(post domain.Post, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, status, postResponse{OK: true, Post: post})
	}
}

// queryInt returns the named query parameter as an int, or nil when it is
// absent or not a number.
func queryInt(r *http.Request, name string) *int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}
	return &v
}
