package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-hub/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Rutas planas: /animals/{animalID}/adoption-requests las registra adoptions.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/animals", createAnimalHandler(svc))
	r.Get("/animals", listAnimalsHandler(svc))
	r.Get("/animals/{animalID}", getAnimalHandler(svc))
}

type createAnimalRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Status  string `json:"status"` // AVAILABLE (default) o ADOPTION_IN_PROGRESS
}

type animalResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Species   Species   `json:"species"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary Alta de animal
// @Description Registra un animal disponible para adopción. El estado ADOPTED no se puede asignar a mano.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Species: req.Species,
			Status:  req.Status,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "animal id required", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:        a.ID,
		Name:      a.Name,
		Species:   a.Species,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
