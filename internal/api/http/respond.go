package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/edufuturoia-commits/aula-core/internal/academic"
	authmw "github.com/edufuturoia-commits/aula-core/internal/auth/middleware"
	"github.com/edufuturoia-commits/aula-core/internal/rbac"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps engine errors onto HTTP statuses. Absence of data is never
// an error at this layer; handlers return empty collections instead.
func writeErr(w http.ResponseWriter, err error) {
	var verr *academic.ValidationError
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, academic.ErrLocked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, academic.ErrNotFound), errors.Is(err, academic.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, academic.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, academic.ErrVersionConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &verr), errors.As(err, &verrs):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func actorFromRequest(r *http.Request) academic.Actor {
	return academic.Actor{
		ID:   authmw.SubjectFromContext(r.Context()),
		Role: rbac.RoleFromContext(r.Context()),
	}
}
