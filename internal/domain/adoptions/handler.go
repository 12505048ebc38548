package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-hub/internal/domain/animals"
	"pet-adoption-hub/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Solicitudes de un animal
	r.Post("/animals/{animalID}/adoption-requests", createRequestHandler(svc))
	r.Get("/animals/{animalID}/adoption-requests", listByAnimalHandler(svc))

	// Mis solicitudes
	r.Get("/me/adoption-requests", listMyRequestsHandler(svc))

	r.Get("/adoption-requests/{requestID}", getRequestHandler(svc))
	// Decisión del staff (el control de rol queda fuera de este servicio)
	r.Patch("/adoption-requests/{requestID}/status", setStatusHandler(svc))
}

type createRequestRequest struct {
	Answers map[string]string `json:"answers"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type requestResponse struct {
	ID          string            `json:"id"`
	AnimalID    string            `json:"animal_id"`
	UserID      string            `json:"user_id"`
	Status      Status            `json:"status"`
	Answers     map[string]string `json:"answers"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type decisionResponse struct {
	Request      requestResponse `json:"request"`
	AnimalStatus animals.Status  `json:"animal_status"`
	AutoRejected []string        `json:"auto_rejected"`
	PointsAdded  int64           `json:"points_added"`
	Unlocked     []string        `json:"unlocked"`
	Noop         bool            `json:"noop"`
}

// createRequestHandler godoc
// @Summary Solicitar adopción
// @Description Crea una solicitud REQUESTED para el animal. 409 si el animal ya fue adoptado o si ya existe una solicitud abierta del mismo usuario.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param animalID path string true "Animal ID"
// @Param payload body createRequestRequest false "cuestionario"
// @Success 201 {object} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "conflict"
// @Router /animals/{animalID}/adoption-requests [post]
func createRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequestRequest
		// Body opcional: sin cuestionario también vale.
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		out, err := svc.CreateRequest(r.Context(), CreateInput{
			AnimalID: chi.URLParam(r, "animalID"),
			UserID:   claims.UserID,
			UserName: claims.Name,
			Answers:  req.Answers,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(out))
	}
}

func listByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponses(items))
	}
}

func listMyRequestsHandler(svc *Service) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, toRequestResponses(items))
	}
}

func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.GetByID(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(out))
	}
}

// setStatusHandler godoc
// @Summary Cambiar estado de una solicitud
// @Description Aprueba, rechaza o reabre una solicitud. Aprobar adopta el animal y rechaza las solicitudes competidoras; repetir la misma decisión no tiene efecto.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param payload body setStatusRequest true "REQUESTED | UNDER_REVIEW | APPROVED | REJECTED"
// @Success 200 {object} decisionResponse
// @Failure 400 {string} string "invalid status"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "conflict"
// @Router /adoption-requests/{requestID}/status [patch]
func setStatusHandler(svc *Service) http.HandlerFunc {
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

		d, err := svc.SetStatus(r.Context(), chi.URLParam(r, "requestID"), to)
		if err != nil {
			writeError(w, err)
			return
		}

		autoRejected := d.AutoRejected
		if autoRejected == nil {
			autoRejected = []string{}
		}
		writeJSON(w, http.StatusOK, decisionResponse{
			Request:      toRequestResponse(d.Request),
			AnimalStatus: d.Animal.Status,
			AutoRejected: autoRejected,
			PointsAdded:  d.Rewards.PointsAdded,
			Unlocked:     d.Rewards.UnlockedStrings(),
			Noop:         d.Noop,
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRequestResponse(q Request) requestResponse {
	answers := q.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	return requestResponse{
		ID:          q.ID,
		AnimalID:    q.AnimalID,
		UserID:      q.UserID,
		Status:      q.Status,
		Answers:     answers,
		CompletedAt: q.CompletedAt,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func toRequestResponses(items []Request) []requestResponse {
	out := make([]requestResponse, 0, len(items))
	for _, q := range items {
		out = append(out, toRequestResponse(q))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
