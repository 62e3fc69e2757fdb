package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/api/oapi"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
)

// ErrBadRequest marks requests that could not be read at all.
var ErrBadRequest = errors.New("bad request")

type Error struct {
	Err    string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (se Error) ToJSON() []byte {
	b, err := json.Marshal(se)
	if err != nil {
		return []byte(`{"error":"marshal error"}`)
	}

	return b
}

// handleError writes the response err maps to. Causes of internal errors
// are logged, never sent.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	var (
		verr   models.ValidationError
		perr   *oapi.InvalidParamFormatError
		code   int
		result Error
	)

	switch {
	case errors.As(err, &verr):
		code, result = http.StatusBadRequest, Error{Err: "validation failed", Fields: verr.Fields}
	case errors.As(err, &perr):
		code, result = http.StatusBadRequest, Error{Err: perr.Error()} //nolint:exhaustruct
	case errors.Is(err, ErrBadRequest):
		code, result = http.StatusBadRequest, Error{Err: err.Error()} //nolint:exhaustruct
	case errors.Is(err, models.ErrUnauthorized):
		code, result = http.StatusUnauthorized, Error{Err: "unauthorized"} //nolint:exhaustruct
	case errors.Is(err, models.ErrNotFound):
		code, result = http.StatusNotFound, Error{Err: "not found"} //nolint:exhaustruct
	default:
		s.lg.Errorf("internal error: %s", err.Error())

		code, result = http.StatusInternalServerError, Error{Err: "internal error"} //nolint:exhaustruct
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(result.ToJSON()) //nolint:errcheck
}

// paramErrorHandler reports parameters the router could not bind.
func (s *Server) paramErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var tooMany *oapi.TooManyValuesForParamError
	if errors.As(err, &tooMany) {
		err = &oapi.InvalidParamFormatError{ParamName: tooMany.ParamName, Err: err}
	}

	s.handleError(w, err)
}
