package adoptions

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

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/v1/pets/pet/shelter/", submitHandler(svc))
}

// RegisterManagementRoutes monta las solicitudes del refugio activo. r ya debe tener ShelterContext.
func RegisterManagementRoutes(r chi.Router, svc *Service) {
	r.Group(func(sr chi.Router) {
		sr.Use(middleware.RequireShelter)
		sr.Get("/requests", listRequestsHandler(svc))
		sr.Patch("/requests/{requestID}", updateRequestHandler(svc))
	})
}

type submitRequest struct {
	PetID int64 `json:"pet_id" validate:"required,gt=0"`
}

type shelterContactResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type requestResponse struct {
	ID        int64     `json:"id"`
	PetID     int64     `json:"pet_id"`
	PetName   string    `json:"pet_name,omitempty"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updateRequestRequest struct {
	Status string `json:"status" validate:"required"`
}

// submitHandler godoc
// @Summary      Quiero adoptar
// @Description  Registra el interés del usuario y devuelve el contacto del refugio.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body  body      submitRequest  true  "Mascota"
// @Success      200   {object}  shelterContactResponse
// @Failure      401   {string}  string
// @Failure      404   {string}  string
// @Router       /v1/pets/pet/shelter/ [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			validate.WriteError(w, err)
			return
		}

		_, sh, err := svc.Submit(r.Context(), id.UserID, req.PetID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, shelterContactResponse{
			ID:    sh.ID,
			Name:  sh.Name,
			Email: sh.Email,
			Phone: sh.Phone,
		})
	}
}

// listRequestsHandler godoc
// @Summary      Solicitudes del refugio activo
// @Tags         management
// @Produce      json
// @Success      200  {array}   requestResponse
// @Router       /management/requests [get]
func listRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())

		items, err := svc.ListForShelter(r.Context(), shelterID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]requestResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toRequestResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateRequestHandler godoc
// @Summary      Cambiar estado de solicitud
// @Description  PET_TAKEN_TEMPORARY, PET_RETURNED y PET_TAKEN_PERMANENTLY actualizan el estado de la mascota.
// @Tags         management
// @Accept       json
// @Produce      json
// @Param        requestID  path      int                   true  "Request ID"
// @Param        body       body      updateRequestRequest  true  "Nuevo estado"
// @Success      200        {object}  requestResponse
// @Failure      400        {string}  string
// @Failure      404        {string}  string
// @Router       /management/requests/{requestID} [patch]
func updateRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())

		id, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid request id", http.StatusBadRequest)
			return
		}

		var req updateRequestRequest
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
		status, err := ParseStatus(req.Status)
		if err != nil {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		e, err := svc.UpdateStatus(r.Context(), shelterID, id, status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(e))
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

func toRequestResponse(e Entry) requestResponse {
	return requestResponse{
		ID:        e.ID,
		PetID:     e.PetID,
		PetName:   e.PetName,
		UserID:    e.UserID,
		Username:  e.Username,
		UserEmail: e.UserEmail,
		Status:    e.Status.String(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
