package volunteers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-hub/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/volunteer-applications", applyHandler(svc))
	r.Get("/volunteer-applications/{applicationID}", getApplicationHandler(svc))
	r.Get("/me/volunteer-applications", listMyApplicationsHandler(svc))
	r.Patch("/volunteer-applications/{applicationID}/status", setApplicationStatusHandler(svc))
}

type applyRequest struct {
	Motivation string `json:"motivation"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type applicationResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Motivation string    `json:"motivation"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type statusResultResponse struct {
	Application applicationResponse `json:"application"`
	PointsAdded int64               `json:"points_added"`
	Unlocked    []string            `json:"unlocked"`
	Noop        bool                `json:"noop"`
}

func applyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req applyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Apply(r.Context(), claims.UserID, claims.Name, req.Motivation)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

func getApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func listMyApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// setApplicationStatusHandler godoc
// @Summary Decidir candidatura de voluntariado
// @Description APPROVED otorga volunteer_heart una única vez por usuario.
// @Tags volunteers
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Param payload body setStatusRequest true "PENDING | APPROVED | REJECTED"
// @Success 200 {object} statusResultResponse
// @Failure 400 {string} string "invalid status"
// @Failure 404 {string} string "not found"
// @Router /volunteer-applications/{applicationID}/status [patch]
func setApplicationStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		to := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
		if !to.Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		res, err := svc.SetStatus(r.Context(), chi.URLParam(r, "applicationID"), to)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResultResponse{
			Application: toApplicationResponse(res.Application),
			PointsAdded: res.Rewards.PointsAdded,
			Unlocked:    res.Rewards.UnlockedStrings(),
			Noop:        res.Noop,
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Motivation: a.Motivation,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
