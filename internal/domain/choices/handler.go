package choices

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

// Limiter limita decisiones por usuario. nil => sin límite.
type Limiter interface {
	Allow(ctx context.Context, userID int64) (retryAfterSec int64, allowed bool, err error)
}

func RegisterRoutes(r chi.Router, svc *Service, limiter Limiter) {
	r.Post("/v1/pets/pet/choice/", chooseHandler(svc, limiter))
	r.Get("/v1/users/me/choices/", listMyChoicesHandler(svc))
}

type chooseRequest struct {
	PetID      int64 `json:"pet_id" validate:"required,gt=0"`
	IsFavorite bool  `json:"is_favorite"`
}

type choiceResponse struct {
	PetID      int64     `json:"pet_id"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// chooseHandler godoc
// @Summary      Registrar decisión
// @Description  Guarda si al usuario le gustó o no la mascota. Repetir la llamada reemplaza la decisión.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body  body      chooseRequest  true  "Decisión"
// @Success      200   {object}  choiceResponse
// @Failure      400   {string}  string
// @Failure      401   {string}  string
// @Failure      404   {string}  string
// @Failure      429   {string}  string
// @Router       /v1/pets/pet/choice/ [post]
func chooseHandler(svc *Service, limiter Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req chooseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			validate.WriteError(w, err)
			return
		}

		if limiter != nil {
			retryAfter, allowed, err := limiter.Allow(r.Context(), id.UserID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				metrics.ChoicesRateLimited.Inc()
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
		}

		c, err := svc.Choose(r.Context(), id.UserID, req.PetID, req.IsFavorite)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toChoiceResponse(c))
	}
}

// listMyChoicesHandler godoc
// @Summary      Mis decisiones
// @Tags         users
// @Produce      json
// @Success      200  {array}   choiceResponse
// @Failure      401  {string}  string
// @Router       /v1/users/me/choices/ [get]
func listMyChoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := svc.ListForUser(r.Context(), id.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]choiceResponse, 0, len(list))
		for _, c := range list {
			out = append(out, toChoiceResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toChoiceResponse(c Choice) choiceResponse {
	return choiceResponse{
		PetID:      c.PetID,
		IsFavorite: c.IsFavorite,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
