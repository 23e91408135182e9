package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/edufuturoia-commits/aula-core/internal/roster"
)

// GET /students?grade=&group=&jornada=
func ListStudentsHandler(people roster.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		students, err := people.ListStudents(r.Context(), roster.Filter{
			Grade:   strings.TrimSpace(q.Get("grade")),
			Group:   strings.TrimSpace(q.Get("group")),
			Jornada: strings.TrimSpace(q.Get("jornada")),
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, students)
	}
}

// PUT /people upserts one person record (student, teacher, or guardian).
func UpsertPersonHandler(people roster.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p roster.Person
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		switch p.Kind {
		case roster.KindStudent, roster.KindTeacher, roster.KindGuardian:
		default:
			http.Error(w, "kind must be student, teacher, or guardian", http.StatusUnprocessableEntity)
			return
		}
		if p.Name == "" {
			http.Error(w, "name required", http.StatusUnprocessableEntity)
			return
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := people.Put(r.Context(), p); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
