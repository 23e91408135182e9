package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/edufuturoia-commits/aula-core/internal/academic"
	authmw "github.com/edufuturoia-commits/aula-core/internal/auth/middleware"
	"github.com/edufuturoia-commits/aula-core/internal/reporting"
	"github.com/edufuturoia-commits/aula-core/internal/roster"
)

// reportScope is the filter every reporting endpoint accepts via query
// string: grade, group, period, jornada.
type reportScope struct {
	grade   string
	group   string
	period  string
	jornada string
}

func scopeFromRequest(r *http.Request) reportScope {
	q := r.URL.Query()
	return reportScope{
		grade:   strings.TrimSpace(q.Get("grade")),
		group:   strings.TrimSpace(q.Get("group")),
		period:  strings.TrimSpace(q.Get("period")),
		jornada: strings.TrimSpace(q.Get("jornada")),
	}
}

// loadScope fetches the student population and gradebooks for a scope.
// Empty populations come back as empty slices; the report views turn those
// into empty results rather than failures.
func loadScope(r *http.Request, people roster.Repository, books academic.Repository) ([]roster.Student, []academic.Gradebook, error) {
	sc := scopeFromRequest(r)
	students, err := people.ListStudents(r.Context(), roster.Filter{Grade: sc.grade, Group: sc.group, Jornada: sc.jornada})
	if err != nil {
		return nil, nil, err
	}
	gbs, err := books.List(r.Context(), academic.Filter{Grade: sc.grade, Group: sc.group, Period: sc.period})
	if err != nil {
		return nil, nil, err
	}
	return students, gbs, nil
}

// GET /reports/students
func StudentReportHandler(people roster.Repository, books academic.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, gbs, err := loadScope(r, people, books)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reporting.StudentAverages(students, gbs))
	}
}

// GET /reports/subjects
func SubjectReportHandler(people roster.Repository, books academic.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, gbs, err := loadScope(r, people, books)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reporting.SubjectAverages(students, gbs))
	}
}

// GET /reports/distribution
func DistributionHandler(people roster.Repository, books academic.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, gbs, err := loadScope(r, people, books)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reporting.Distribution(reporting.StudentAverages(students, gbs)))
	}
}

// GET /reports/top?n=10
func TopStudentsHandler(people roster.Repository, books academic.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := 10
		if raw := r.URL.Query().Get("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
				return
			}
			n = parsed
		}
		students, gbs, err := loadScope(r, people, books)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reporting.TopStudents(reporting.StudentAverages(students, gbs), n))
	}
}

// GET /reports/at-risk
func AtRiskHandler(people roster.Repository, books academic.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, gbs, err := loadScope(r, people, books)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reporting.AtRisk(reporting.StudentAverages(students, gbs)))
	}
}

// GET /reports/me returns a student's own cross-subject average for a period.
// Resolves the caller from the token subject, so the parent/student portal
// never needs the wider reports:view permission.
func MyReportHandler(people roster.Repository, books academic.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		p, err := people.Get(r.Context(), sub)
		if err != nil {
			writeErr(w, err)
			return
		}
		st, ok := p.AsStudent()
		if !ok {
			http.Error(w, "not a student account", http.StatusForbidden)
			return
		}
		sc := scopeFromRequest(r)
		gbs, err := books.List(r.Context(), academic.Filter{Grade: st.Grade, Group: st.Group, Period: sc.period})
		if err != nil {
			writeErr(w, err)
			return
		}
		avgs := reporting.StudentAverages([]roster.Student{st}, gbs)
		writeJSON(w, http.StatusOK, avgs[0])
	}
}

// GET /reports/comparison
// Buckets by grade, or by group within the grade when ?grade= is set.
func ComparisonHandler(people roster.Repository, books academic.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc := scopeFromRequest(r)
		// The comparison view spans groups, so only period/jornada narrow
		// the fetch; grade acts as the bucketing switch.
		students, err := people.ListStudents(r.Context(), roster.Filter{Jornada: sc.jornada})
		if err != nil {
			writeErr(w, err)
			return
		}
		gbs, err := books.List(r.Context(), academic.Filter{Period: sc.period})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reporting.CompareGradeGroups(students, gbs, sc.grade))
	}
}
