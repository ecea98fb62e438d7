package server

import (
	"net/http"

	"blogapi/internal/models"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.respondErr(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	s.respond(w, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	category, err := s.categories.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, category)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, err)
		return
	}
	category := &models.Category{Name: req.Name}
	if err := s.categories.Create(r.Context(), category); err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	var req categoryRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, err)
		return
	}
	category, err := s.categories.Update(r.Context(), id, req.Name)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	if err := s.categories.Delete(r.Context(), id); err != nil {
		s.respondErr(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
