package rewards

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-hub/internal/middleware"
	"pet-adoption-hub/internal/ports/settings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, toggle settings.Toggle) {
	r.Post("/me/daily-login", dailyLoginHandler(svc))
	r.Get("/me/rewards", myRewardsHandler(svc))

	r.Get("/ranking", rankingHandler(svc))
	r.Get("/achievements", catalogHandler(svc))

	// Toggle de gamificación (el control de rol queda fuera de este servicio)
	r.Route("/admin/gamification", func(ar chi.Router) {
		ar.Get("/", getToggleHandler(toggle))
		ar.Put("/", setToggleHandler(toggle))
	})
}

type userRewardsResponse struct {
	UserID       string                 `json:"user_id"`
	Name         string                 `json:"name"`
	Points       int64                  `json:"points"`
	Achievements []achievementEarnedDTO `json:"achievements"`
}

type achievementEarnedDTO struct {
	Code     AchievementCode `json:"code"`
	EarnedAt time.Time       `json:"earned_at"`
}

type dailyLoginResponse struct {
	Rewarded    bool  `json:"rewarded"`
	PointsAdded int64 `json:"points_added"`
	PointsTotal int64 `json:"points_total"`
}

type achievementResponse struct {
	Code        AchievementCode `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BonusPoints int64           `json:"bonus_points"`
}

type rankingResponse struct {
	Position int    `json:"position"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Points   int64  `json:"points"`
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

type toggleResponse struct {
	Enabled bool `json:"enabled"`
}

// dailyLoginHandler godoc
// @Summary Bonus de login diario
// @Description Acredita 5 puntos como máximo una vez por día calendario (UTC). Si la gamificación está apagada no acredita nada.
// @Tags rewards
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} dailyLoginResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/daily-login [post]
func dailyLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := svc.ClaimDailyLogin(r.Context(), claims.UserID, claims.Name)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, dailyLoginResponse{
			Rewarded:    res.Rewarded,
			PointsAdded: res.Outcome.PointsAdded,
			PointsTotal: res.User.Points,
		})
	}
}

func myRewardsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Profile(r.Context(), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				// Todavía no generó actividad: perfil vacío.
				writeJSON(w, http.StatusOK, userRewardsResponse{UserID: claims.UserID, Achievements: []achievementEarnedDTO{}})
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := userRewardsResponse{
			UserID:       p.User.ID,
			Name:         p.User.Name,
			Points:       p.User.Points,
			Achievements: make([]achievementEarnedDTO, 0, len(p.Achievements)),
		}
		for _, ua := range p.Achievements {
			out.Achievements = append(out.Achievements, achievementEarnedDTO{Code: ua.Code, EarnedAt: ua.EarnedAt})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func rankingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		items, err := svc.Ranking(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]rankingResponse, 0, len(items))
		for i, e := range items {
			out = append(out, rankingResponse{Position: i + 1, UserID: e.UserID, Name: e.Name, Points: e.Points})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func catalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Catalog(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]achievementResponse, 0, len(items))
		for _, a := range items {
			out = append(out, achievementResponse{
				Code:        a.Code,
				Name:        a.Name,
				Description: a.Description,
				BonusPoints: a.BonusPoints,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getToggleHandler(toggle settings.Toggle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if toggle == nil {
			writeJSON(w, http.StatusOK, toggleResponse{Enabled: false})
			return
		}
		on, err := toggle.GamificationEnabled(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{Enabled: on})
	}
}

// setToggleHandler godoc
// @Summary Encender/apagar gamificación
// @Description Cambia el interruptor global. Con la gamificación apagada el motor de adopciones sigue funcionando, pero no se otorgan puntos ni logros.
// @Tags rewards
// @Accept json
// @Produce json
// @Param payload body toggleRequest true "enabled"
// @Success 200 {object} toggleResponse
// @Failure 400 {string} string "invalid json"
// @Failure 501 {string} string "toggle source is read-only"
// @Router /admin/gamification [put]
func setToggleHandler(toggle settings.Toggle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		writer, ok := toggle.(settings.ToggleWriter)
		if !ok {
			http.Error(w, "toggle source is read-only", http.StatusNotImplemented)
			return
		}

		var req toggleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := writer.SetGamificationEnabled(r.Context(), *req.Enabled); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{Enabled: *req.Enabled})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
