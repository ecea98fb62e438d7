package server

import (
	"fmt"
	"net/http"

	"blogapi/internal/apperr"
	"blogapi/internal/auth"
	"blogapi/internal/models"
	"blogapi/internal/store"
)

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		s.respondErr(w, apperr.Unauthenticated("jwt token missing"))
		return
	}
	user, err := s.users.GetByID(r.Context(), id.UserID)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.respondErr(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	s.respond(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondErr(w, apperr.Internal(err))
		return
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hash,
		IsAdmin:  req.IsAdmin,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	var req updateUserRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, err)
		return
	}

	upd := store.UserUpdate{Username: req.Username, IsAdmin: req.IsAdmin}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			s.respondErr(w, apperr.Internal(err))
			return
		}
		upd.Password = &hash
	}

	user, err := s.users.Update(r.Context(), id, upd)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("User with ID %d deleted successfully", id),
	})
}
