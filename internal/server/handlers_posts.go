package server

import (
	"net/http"

	"blogapi/internal/apperr"
	"blogapi/internal/auth"
	"blogapi/internal/models"
	"blogapi/internal/store"
)

type createPostRequest struct {
	CategoryID uint    `json:"category_id" validate:"required"`
	Title      string  `json:"title" validate:"required,max=255"`
	Content    *string `json:"content"`
	Status     string  `json:"status"`
}

type updatePostRequest struct {
	CategoryID *uint   `json:"category_id"`
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Content    *string `json:"content"`
	Status     *string `json:"status"`
}

// visibilityFor maps the (possibly absent) caller identity onto a post
// listing visibility.
func visibilityFor(id *auth.Identity, ok bool) store.Visibility {
	switch {
	case !ok:
		return store.VisibilityPublic
	case id.IsAdmin:
		return store.VisibilityAll
	default:
		return store.VisibilityMember
	}
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	vis := visibilityFor(id, ok)

	var categoryID *uint
	if name := r.URL.Query().Get("category"); name != "" {
		category, err := s.categories.GetByName(r.Context(), name)
		if err != nil {
			s.respondErr(w, err)
			return
		}
		categoryID = &category.ID
	}

	posts, err := s.posts.List(r.Context(), vis, categoryID)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	s.respond(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	post, err := s.posts.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	// A single post is subject to the same visibility rules as listings.
	caller, ok := auth.IdentityFrom(r.Context())
	switch visibilityFor(caller, ok) {
	case store.VisibilityPublic:
		if post.Status != models.PostStatusPublic {
			s.respondErr(w, apperr.NotFound("Post not found"))
			return
		}
	case store.VisibilityMember:
		if post.Status == models.PostStatusDraft && post.UserID != caller.UserID {
			s.respondErr(w, apperr.NotFound("Post not found"))
			return
		}
	}
	s.respond(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.IdentityFrom(r.Context())

	var req createPostRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, err)
		return
	}
	if req.Status != "" && !models.ValidPostStatus(req.Status) {
		s.respondErr(w, apperr.InvalidInput("invalid post status"))
		return
	}
	if _, err := s.categories.GetByID(r.Context(), req.CategoryID); err != nil {
		s.respondErr(w, err)
		return
	}

	post := &models.Post{
		UserID:     caller.UserID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		Status:     req.Status,
	}
	if err := s.posts.Create(r.Context(), post); err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.IdentityFrom(r.Context())

	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	post, err := s.posts.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	if post.UserID != caller.UserID && !caller.IsAdmin {
		s.respondErr(w, apperr.Forbidden("not the post owner"))
		return
	}

	var req updatePostRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, err)
		return
	}
	if req.Status != nil && !models.ValidPostStatus(*req.Status) {
		s.respondErr(w, apperr.InvalidInput("invalid post status"))
		return
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(r.Context(), *req.CategoryID); err != nil {
			s.respondErr(w, err)
			return
		}
	}

	updated, err := s.posts.Update(r.Context(), id, store.PostUpdate{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		Status:     req.Status,
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.IdentityFrom(r.Context())

	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	post, err := s.posts.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	if post.UserID != caller.UserID && !caller.IsAdmin {
		s.respondErr(w, apperr.Forbidden("not the post owner"))
		return
	}

	if err := s.posts.Delete(r.Context(), id); err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
