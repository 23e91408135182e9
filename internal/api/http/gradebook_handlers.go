package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edufuturoia-commits/aula-core/internal/academic"
)

type gradebookResponse struct {
	Gradebook academic.Gradebook `json:"gradebook"`
	Warning   string             `json:"warning,omitempty"`
}

// GET /gradebooks?subject=&grade=&group=&period=
// With all four key fields set this lazily instantiates the gradebook on
// first access; with a partial filter it lists matching gradebooks.
func EnsureGradebookHandler(svc *academic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		subject := strings.TrimSpace(q.Get("subject"))
		grade := strings.TrimSpace(q.Get("grade"))
		group := strings.TrimSpace(q.Get("group"))
		period := strings.TrimSpace(q.Get("period"))

		if subject != "" && grade != "" && group != "" && period != "" {
			gb, err := svc.Ensure(r.Context(), subject, grade, group, period, actorFromRequest(r))
			if err != nil {
				writeErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, gb)
			return
		}
		books, err := svc.List(r.Context(), academic.Filter{Subject: subject, Grade: grade, Group: group, Period: period})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, books)
	}
}

// POST /gradebooks/{gradebookID}/items
func AddItemHandler(svc *academic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in academic.ItemInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		gb, warn, err := svc.AddItem(r.Context(), chi.URLParam(r, "gradebookID"), in, actorFromRequest(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, gradebookResponse{Gradebook: gb, Warning: string(warn)})
	}
}

// PUT /gradebooks/{gradebookID}/items/{itemID}
func UpdateItemHandler(svc *academic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in academic.ItemInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		gb, warn, err := svc.UpdateItem(r.Context(), chi.URLParam(r, "gradebookID"), chi.URLParam(r, "itemID"), in, actorFromRequest(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gradebookResponse{Gradebook: gb, Warning: string(warn)})
	}
}

// DELETE /gradebooks/{gradebookID}/items/{itemID}
func RemoveItemHandler(svc *academic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gb, err := svc.RemoveItem(r.Context(), chi.URLParam(r, "gradebookID"), chi.URLParam(r, "itemID"), actorFromRequest(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gb)
	}
}

// PUT /gradebooks/{gradebookID}/scores
func PutScoreHandler(svc *academic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in academic.ScoreInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		gb, err := svc.PutScore(r.Context(), chi.URLParam(r, "gradebookID"), in, actorFromRequest(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gb)
	}
}

// PUT /gradebooks/{gradebookID}/observations/{studentID}
func SetObservationHandler(svc *academic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		gb, err := svc.SetObservation(r.Context(), chi.URLParam(r, "gradebookID"), chi.URLParam(r, "studentID"), in.Text, actorFromRequest(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gb)
	}
}

// PUT /gradebooks/{gradebookID}/descriptors
func SetPeriodDescriptorsHandler(svc *academic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			DescriptorIDs []string `json:"period_descriptor_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		gb, err := svc.SetPeriodDescriptors(r.Context(), chi.URLParam(r, "gradebookID"), in.DescriptorIDs, actorFromRequest(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gb)
	}
}

// POST /gradebooks/{gradebookID}/lock and /unlock
func SetLockHandler(svc *academic.Service, locked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gb, err := svc.SetLocked(r.Context(), chi.URLParam(r, "gradebookID"), locked, actorFromRequest(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gb)
	}
}
