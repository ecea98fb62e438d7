package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"blogapi/internal/apperr"
)

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.log.Error().Err(err).Msg("encoding response failed")
		}
	}
}

// respondErr writes the mapped error response, logging uncoded errors
// as internal failures.
func (s *Server) respondErr(w http.ResponseWriter, err error) {
	var coded *apperr.Error
	if !errors.As(err, &coded) || coded.Code == apperr.CodeInternal {
		s.log.Error().Err(err).Msg("request failed")
	}
	apperr.Write(w, err)
}

// decode parses a JSON body into v and runs struct validation on it.
func (s *Server) decode(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidInput("invalid request body").WithCause(err)
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperr.InvalidInput("invalid field: " + verrs[0].Field()).WithCause(err)
		}
		return apperr.InvalidInput("invalid request body").WithCause(err)
	}
	return nil
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.InvalidInput("invalid id").WithCause(err)
	}
	return uint(id), nil
}
