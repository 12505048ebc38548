package donations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-hub/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/donations", createDonationHandler(svc))
	r.Get("/donations/{donationID}", getDonationHandler(svc))
	r.Get("/me/donations", listMyDonationsHandler(svc))

	// Confirmación (pasarela o staff)
	r.Patch("/donations/{donationID}/status", setDonationStatusHandler(svc))
}

type createDonationRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"50.00"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type donationResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id,omitempty"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type statusResultResponse struct {
	Donation    donationResponse `json:"donation"`
	PointsAdded int64            `json:"points_added"`
	Unlocked    []string         `json:"unlocked"`
	Noop        bool             `json:"noop"`
}

// createDonationHandler godoc
// @Summary Registrar donación
// @Description Crea una donación PENDING. Sin usuario autenticado se registra como anónima y no genera recompensas.
// @Tags donations
// @Accept json
// @Produce json
// @Param payload body createDonationRequest true "monto en reales"
// @Success 201 {object} donationResponse
// @Failure 400 {string} string "invalid input"
// @Router /donations [post]
func createDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createDonationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			UserID:   claims.UserID,
			UserName: claims.Name,
			Amount:   req.Amount,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDonationResponse(d))
	}
}

func getDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "donationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDonationResponse(d))
	}
}

func listMyDonationsHandler(svc *Service) http.HandlerFunc {
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
		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// setDonationStatusHandler godoc
// @Summary Cambiar estado de una donación
// @Description Al pasar a CONFIRMED se acreditan floor(monto) puntos y los logros que correspondan. Reconfirmar no tiene efecto.
// @Tags donations
// @Accept json
// @Produce json
// @Param donationID path string true "Donation ID"
// @Param payload body setStatusRequest true "PENDING | CONFIRMED | REJECTED"
// @Success 200 {object} statusResultResponse
// @Failure 400 {string} string "invalid status"
// @Failure 404 {string} string "not found"
// @Router /donations/{donationID}/status [patch]
func setDonationStatusHandler(svc *Service) http.HandlerFunc {
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

		res, err := svc.SetStatus(r.Context(), chi.URLParam(r, "donationID"), to)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResultResponse{
			Donation:    toDonationResponse(res.Donation),
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

func toDonationResponse(d Donation) donationResponse {
	return donationResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Amount:    d.Amount,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
