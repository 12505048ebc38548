package divulgations

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
	r.Post("/divulgations", submitHandler(svc))
	r.Get("/divulgations", listPublishedHandler(svc))
	r.Get("/divulgations/{divulgationID}", getDivulgationHandler(svc))
	r.Get("/me/divulgations", listMyDivulgationsHandler(svc))
	r.Patch("/divulgations/{divulgationID}/status", setDivulgationStatusHandler(svc))
}

type submitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type divulgationResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type statusResultResponse struct {
	Divulgation divulgationResponse `json:"divulgation"`
	PointsAdded int64               `json:"points_added"`
	Unlocked    []string            `json:"unlocked"`
	Noop        bool                `json:"noop"`
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Submit(r.Context(), SubmitInput{
			UserID:      claims.UserID,
			UserName:    claims.Name,
			Title:       req.Title,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDivulgationResponse(d))
	}
}

func listPublishedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPublished(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDivulgationResponses(items))
	}
}

func getDivulgationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "divulgationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDivulgationResponse(d))
	}
}

func listMyDivulgationsHandler(svc *Service) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, toDivulgationResponses(items))
	}
}

// setDivulgationStatusHandler godoc
// @Summary Revisar divulgación
// @Description Pasar a REVIEWED publica la divulgación y otorga voice_for_the_voiceless (una vez por usuario).
// @Tags divulgations
// @Accept json
// @Produce json
// @Param divulgationID path string true "Divulgation ID"
// @Param payload body setStatusRequest true "PENDING | REVIEWED | REJECTED"
// @Success 200 {object} statusResultResponse
// @Failure 400 {string} string "invalid status"
// @Failure 404 {string} string "not found"
// @Router /divulgations/{divulgationID}/status [patch]
func setDivulgationStatusHandler(svc *Service) http.HandlerFunc {
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

		res, err := svc.SetStatus(r.Context(), chi.URLParam(r, "divulgationID"), to)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResultResponse{
			Divulgation: toDivulgationResponse(res.Divulgation),
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

func toDivulgationResponse(d Divulgation) divulgationResponse {
	return divulgationResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDivulgationResponses(items []Divulgation) []divulgationResponse {
	out := make([]divulgationResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDivulgationResponse(d))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
