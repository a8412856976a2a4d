package shelters

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el directorio público de refugios.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/v1/shelters/", listPublishedHandler(svc))
}

// RegisterManagementRoutes monta las rutas del panel. r ya debe tener ShelterContext.
func RegisterManagementRoutes(r chi.Router, svc *Service, cookie middleware.ShelterCookie) {
	r.Get("/shelters", listMySheltersHandler(svc))
	r.Post("/shelters/{shelterID}/switch", switchShelterHandler(svc, cookie))

	r.Group(func(sr chi.Router) {
		sr.Use(middleware.RequireShelter)
		sr.Get("/shelter", getSelectedShelterHandler(svc))
		sr.Patch("/shelter", updateSelectedShelterHandler(svc))
	})
}

type shelterResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	RegionID    int64     `json:"region_id"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	IsPublished bool      `json:"is_published"`
	Selected    bool      `json:"selected"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type publicShelterResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RegionID int64  `json:"region_id"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type updateShelterRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=128"`
	RegionID    *int64  `json:"region_id" validate:"omitempty,gt=0"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	IsPublished *bool   `json:"is_published"`
}

// listPublishedHandler godoc
// @Summary      Refugios publicados
// @Tags         shelters
// @Produce      json
// @Success      200  {array}  publicShelterResponse
// @Router       /v1/shelters/ [get]
func listPublishedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPublished(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]publicShelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, publicShelterResponse{
				ID:       sh.ID,
				Name:     sh.Name,
				RegionID: sh.RegionID,
				Email:    sh.Email,
				Phone:    sh.Phone,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listMySheltersHandler godoc
// @Summary      Refugios del usuario
// @Description  Refugios donde el usuario es staff; marca el seleccionado.
// @Tags         management
// @Produce      json
// @Success      200  {array}   shelterResponse
// @Failure      401  {string}  string
// @Router       /management/shelters [get]
func listMySheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForUser(r.Context(), id.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		selected, _ := middleware.SelectedShelterID(r.Context())
		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShelterResponse(sh, sh.ID == selected))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// switchShelterHandler godoc
// @Summary      Cambiar refugio activo
// @Description  Reescribe la cookie selected_shelter_id si el usuario es staff del refugio.
// @Tags         management
// @Produce      json
// @Param        shelterID  path      int  true  "Shelter ID"
// @Success      200        {object}  shelterResponse
// @Failure      403        {string}  string
// @Router       /management/shelters/{shelterID}/switch [post]
func switchShelterHandler(svc *Service, cookie middleware.ShelterCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		shelterID, err := strconv.ParseInt(chi.URLParam(r, "shelterID"), 10, 64)
		if err != nil || shelterID <= 0 {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}

		sh, err := svc.Switch(r.Context(), id.UserID, shelterID)
		if err != nil {
			switch {
			case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		cookie.Set(w, sh.ID)
		writeJSON(w, http.StatusOK, toShelterResponse(sh, true))
	}
}

// getSelectedShelterHandler godoc
// @Summary      Refugio activo
// @Tags         management
// @Produce      json
// @Success      200  {object}  shelterResponse
// @Failure      403  {string}  string
// @Router       /management/shelter [get]
func getSelectedShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())

		sh, err := svc.GetByID(r.Context(), shelterID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "shelter not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toShelterResponse(sh, true))
	}
}

// updateSelectedShelterHandler godoc
// @Summary      Editar refugio activo
// @Tags         management
// @Accept       json
// @Produce      json
// @Param        body  body      updateShelterRequest  true  "Campos a modificar"
// @Success      200   {object}  shelterResponse
// @Failure      400   {string}  string
// @Router       /management/shelter [patch]
func updateSelectedShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())

		var req updateShelterRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			validate.WriteError(w, err)
			return
		}

		sh, err := svc.UpdateInfo(r.Context(), shelterID, UpdateInput{
			Name:        req.Name,
			RegionID:    req.RegionID,
			Email:       req.Email,
			Phone:       req.Phone,
			IsPublished: req.IsPublished,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "shelter not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toShelterResponse(sh, true))
	}
}

func toShelterResponse(sh Shelter, selected bool) shelterResponse {
	return shelterResponse{
		ID:          sh.ID,
		Name:        sh.Name,
		RegionID:    sh.RegionID,
		Email:       sh.Email,
		Phone:       sh.Phone,
		IsPublished: sh.IsPublished,
		Selected:    selected,
		UpdatedAt:   sh.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
