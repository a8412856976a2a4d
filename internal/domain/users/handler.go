package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/validate"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// TokenIssuer emite el token de sesión propio de la API.
type TokenIssuer interface {
	Issue(claims auth.Claims) (string, time.Time, error)
}

// RegisterRoutes monta el intercambio de token Firebase y el perfil propio.
// firebase o issuer nil => el endpoint de connect no se registra.
func RegisterRoutes(r chi.Router, svc *Service, firebase auth.AuthVerifier, issuer TokenIssuer) {
	if firebase != nil && issuer != nil {
		r.Post("/v1/authentication/firebase/connect/", connectHandler(svc, firebase, issuer))
	}
	r.Get("/v1/users/me/", meHandler(svc))
}

type connectRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type tokenResponse struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type userResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	ImageURL   string    `json:"image_url"`
	DateJoined time.Time `json:"date_joined"`
}

// connectHandler godoc
// @Summary      Conectar con Firebase
// @Description  Verifica un ID token de Firebase, crea/actualiza el usuario y devuelve un token de la API.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      connectRequest  true  "ID token"
// @Success      201   {object}  tokenResponse
// @Failure      400   {string}  string
// @Failure      401   {string}  string
// @Router       /v1/authentication/firebase/connect/ [post]
func connectHandler(svc *Service, firebase auth.AuthVerifier, issuer TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req connectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			validate.WriteError(w, err)
			return
		}

		claims, err := firebase.Verify(r.Context(), req.IDToken)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.Upsert(r.Context(), claims)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		key, exp, err := issuer.Issue(auth.Claims{
			Subject:    u.Username,
			Email:      u.Email,
			Name:       u.FirstName,
			PictureURL: u.SocialImageURL,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, tokenResponse{Key: key, ExpiresAt: exp})
	}
}

// meHandler godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {string}  string
// @Router       /v1/users/me/ [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByID(r.Context(), id.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, userResponse{
			ID:         u.ID,
			Username:   u.Username,
			Email:      u.Email,
			FirstName:  u.FirstName,
			ImageURL:   u.ImageURL(),
			DateJoined: u.DateJoined,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
