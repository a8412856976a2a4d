package pets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption/internal/domain/regions"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

// ChoiceSource aporta las decisiones guardadas del usuario autenticado.
type ChoiceSource interface {
	JudgedPetIDs(ctx context.Context, userID int64) (liked, disliked []int64, err error)
}

// RegisterRoutes monta las rutas públicas de la app. choices puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, regionsSvc *regions.Service, choices ChoiceSource) {
	r.Post("/v1/pets/generate/", generateHandler(svc, regionsSvc, choices))
	r.Get("/v1/pets/", listByIDsHandler(svc))
	r.Get("/v1/pets/catalog/", catalogHandler(svc))
	r.Get("/v1/pets/{petID}/", getPublicHandler(svc))
	r.Get("/v1/shelters/{shelterID}/pets/", shelterCatalogHandler(svc))
}

// RegisterManagementRoutes monta el CRUD del panel. r ya debe tener ShelterContext.
func RegisterManagementRoutes(r chi.Router, svc *Service, maxUpload int64) {
	r.Group(func(sr chi.Router) {
		sr.Use(middleware.RequireShelter)
		sr.Get("/pets", listShelterPetsHandler(svc))
		sr.Post("/pets", createPetHandler(svc))
		sr.Get("/pets/{petID}", getShelterPetHandler(svc))
		sr.Patch("/pets/{petID}", updatePetHandler(svc))
		sr.Put("/pets/{petID}/photo", uploadPhotoHandler(svc, maxUpload, false))
		sr.Post("/pets/{petID}/profile-photos", uploadPhotoHandler(svc, maxUpload, true))
	})
}

type generateRequest struct {
	LikedPets    []int64 `json:"liked_pets"`
	DislikedPets []int64 `json:"disliked_pets"`
	RegionCode   string  `json:"region_code"`
	PetType      string  `json:"pet_type"`
}

type shelterContactResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type petResponse struct {
	ID               int64                   `json:"id"`
	Name             string                  `json:"name"`
	PetType          Species                 `json:"pet_type"`
	Status           string                  `json:"status"`
	Gender           Gender                  `json:"gender,omitempty"`
	Photo            string                  `json:"photo"`
	ProfilePhotos    []string                `json:"profile_photos"`
	ShortDescription string                  `json:"short_description"`
	Description      string                  `json:"description"`
	Age              *int                    `json:"age,omitempty"`
	Size             DogSize                 `json:"size,omitempty"`
	IndoorOnly       *bool                   `json:"indoor_only,omitempty"`
	Shelter          *shelterContactResponse `json:"shelter,omitempty"`
	UpdatedAt        time.Time               `json:"updated_at"`

	InformationForTeam string `json:"information_for_getpet_team,omitempty"`
}

type catalogResponse struct {
	Page    int           `json:"page"`
	HasNext bool          `json:"has_next"`
	Results []petResponse `json:"results"`
}

type shelterProfileResponse struct {
	Shelter shelterContactResponse `json:"shelter"`
	catalogResponse
}

// generateHandler godoc
// @Summary      Generar recomendaciones
// @Description  Mascotas disponibles de refugios publicados que el usuario aún no juzgó, en orden aleatorio.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body   body      generateRequest  true   "Decisiones previas y filtros"
// @Param        limit  query     int              false  "Máximo de resultados"
// @Success      200    {array}   petResponse
// @Failure      400    {string}  string
// @Router       /v1/pets/generate/ [post]
func generateHandler(svc *Service, regionsSvc *regions.Service, choices ChoiceSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Cuerpo vacío (también chunked) = sin filtros.
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		species, err := ParseSpecies(req.PetType)
		if err != nil {
			http.Error(w, "invalid pet_type", http.StatusBadRequest)
			return
		}

		in := GenerateInput{
			LikedIDs:    req.LikedPets,
			DislikedIDs: req.DislikedPets,
			Species:     species,
		}

		if strings.TrimSpace(req.RegionCode) != "" && regionsSvc != nil {
			rg, err := regionsSvc.GetByCode(r.Context(), req.RegionCode)
			if err != nil {
				if errors.Is(err, regions.ErrNotFound) || errors.Is(err, regions.ErrInvalidInput) {
					http.Error(w, "unknown region_code", http.StatusBadRequest)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			in.RegionID = rg.ID
		}

		if id, ok := middleware.GetIdentity(r.Context()); ok && choices != nil {
			liked, disliked, err := choices.JudgedPetIDs(r.Context(), id.UserID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			in.LikedIDs = append(in.LikedIDs, liked...)
			in.DislikedIDs = append(in.DislikedIDs, disliked...)
		}

		items, err := svc.Generate(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}

		writeJSON(w, http.StatusOK, toListingResponses(r.Context(), svc, items))
	}
}

// listByIDsHandler godoc
// @Summary      Mascotas por id
// @Description  Sincroniza mascotas ya vistas; last_update (RFC3339) filtra las modificadas después.
// @Tags         pets
// @Produce      json
// @Param        pet_ids      query     string  true   "IDs separados por coma"
// @Param        last_update  query     string  false  "RFC3339"
// @Success      200          {array}   petResponse
// @Failure      400          {string}  string
// @Router       /v1/pets/ [get]
func listByIDsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := parseIDList(r.URL.Query().Get("pet_ids"))
		if err != nil || len(ids) == 0 {
			http.Error(w, "invalid pet_ids", http.StatusBadRequest)
			return
		}

		var since *time.Time
		if v := r.URL.Query().Get("last_update"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "invalid last_update", http.StatusBadRequest)
				return
			}
			since = &t
		}

		items, err := svc.ListByIDs(r.Context(), ids, since)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toListingResponses(r.Context(), svc, items))
	}
}

// getPublicHandler godoc
// @Summary      Perfil de mascota
// @Tags         pets
// @Produce      json
// @Param        petID  path      int  true  "Pet ID"
// @Success      200    {object}  petResponse
// @Failure      404    {string}  string
// @Router       /v1/pets/{petID}/ [get]
func getPublicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		l, err := svc.GetPublic(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toListingResponse(r.Context(), svc, l))
	}
}

// catalogHandler godoc
// @Summary      Catálogo público
// @Description  Mascotas disponibles de refugios publicados, más nuevas primero.
// @Tags         pets
// @Produce      json
// @Param        pet_type  query     string  false  "DOG o CAT"
// @Param        page      query     int     false  "Página (desde 1)"
// @Success      200       {object}  catalogResponse
// @Failure      400       {string}  string
// @Router       /v1/pets/catalog/ [get]
func catalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		species, err := ParseSpecies(r.URL.Query().Get("pet_type"))
		if err != nil {
			http.Error(w, "invalid pet_type", http.StatusBadRequest)
			return
		}
		page, ok := pageParam(w, r)
		if !ok {
			return
		}

		cp, err := svc.Catalog(r.Context(), species, page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatalogResponse(r.Context(), svc, cp))
	}
}

// shelterCatalogHandler godoc
// @Summary      Perfil público de refugio
// @Description  Contacto del refugio y sus mascotas disponibles.
// @Tags         shelters
// @Produce      json
// @Param        shelterID  path      int  true   "Shelter ID"
// @Param        page       query     int  false  "Página (desde 1)"
// @Success      200        {object}  shelterProfileResponse
// @Failure      404        {string}  string
// @Router       /v1/shelters/{shelterID}/pets/ [get]
func shelterCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, err := strconv.ParseInt(chi.URLParam(r, "shelterID"), 10, 64)
		if err != nil || shelterID <= 0 {
			http.Error(w, "invalid shelter id", http.StatusBadRequest)
			return
		}
		page, ok := pageParam(w, r)
		if !ok {
			return
		}

		sh, cp, err := svc.ShelterCatalog(r.Context(), shelterID, page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, shelterProfileResponse{
			Shelter:         toShelterContact(sh),
			catalogResponse: toCatalogResponse(r.Context(), svc, cp),
		})
	}
}

type createPetRequest struct {
	Name             string  `json:"name" validate:"required,max=128"`
	PetType          string  `json:"pet_type" validate:"required"`
	Status           string  `json:"status"`
	Gender           string  `json:"gender" validate:"omitempty,oneof=male female"`
	ShortDescription string  `json:"short_description" validate:"max=64"`
	Description      string  `json:"description" validate:"max=4000"`
	Age              *int    `json:"age" validate:"omitempty,min=0,max=40"`
	Size             DogSize `json:"size" validate:"omitempty,oneof=small medium large"`
	IndoorOnly       bool    `json:"indoor_only"`

	InformationForTeam string `json:"information_for_getpet_team" validate:"max=1000"`
}

type updatePetRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=128"`
	Status           *string  `json:"status"`
	Gender           *string  `json:"gender" validate:"omitempty,oneof=male female"`
	ShortDescription *string  `json:"short_description" validate:"omitempty,max=64"`
	Description      *string  `json:"description" validate:"omitempty,max=4000"`
	Age              *int     `json:"age" validate:"omitempty,min=0,max=40"`
	Size             *DogSize `json:"size" validate:"omitempty,oneof=small medium large"`
	IndoorOnly       *bool    `json:"indoor_only"`

	InformationForTeam *string `json:"information_for_getpet_team" validate:"omitempty,max=1000"`
}

// listShelterPetsHandler godoc
// @Summary      Mascotas del refugio activo
// @Tags         management
// @Produce      json
// @Param        species              query     string  false  "DOG o CAT"
// @Param        status               query     string  false  "AVAILABLE, TAKEN_TEMPORARILY, ..."
// @Param        gender               query     string  false  "male o female"
// @Param        missing_information  query     string  false  "yes: solo mascotas sin sexo cargado"
// @Param        q                    query     string  false  "Busca en el nombre"
// @Param        page                 query     int     false  "Página (desde 1)"
// @Success      200                  {array}   petResponse
// @Failure      400                  {string}  string
// @Router       /management/pets [get]
func listShelterPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())
		q := r.URL.Query()

		var (
			f   ManagementFilter
			err error
		)
		if f.Species, err = ParseSpecies(q.Get("species")); err != nil {
			http.Error(w, "invalid species", http.StatusBadRequest)
			return
		}
		if v := q.Get("status"); v != "" {
			if f.Status, err = ParseStatus(v); err != nil {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
		}
		if v := strings.ToLower(strings.TrimSpace(q.Get("gender"))); v != "" {
			f.Gender = Gender(v)
			if !validGender(f.Gender) {
				http.Error(w, "invalid gender", http.StatusBadRequest)
				return
			}
		}
		switch strings.ToLower(q.Get("missing_information")) {
		case "":
		case "yes", "true", "1":
			f.MissingInfo = true
		default:
			http.Error(w, "invalid missing_information", http.StatusBadRequest)
			return
		}
		f.Query = q.Get("q")

		page, ok := pageParam(w, r)
		if !ok {
			return
		}

		items, err := svc.ListForShelter(r.Context(), shelterID, f, page)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(r.Context(), svc, p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary      Alta de mascota
// @Tags         management
// @Accept       json
// @Produce      json
// @Param        body  body      createPetRequest  true  "Mascota"
// @Success      201   {object}  petResponse
// @Failure      400   {string}  string
// @Router       /management/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())

		var req createPetRequest
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

		species, err := ParseSpecies(req.PetType)
		if err != nil || species == "" {
			http.Error(w, "invalid pet_type", http.StatusBadRequest)
			return
		}
		var status Status
		if req.Status != "" {
			if status, err = ParseStatus(req.Status); err != nil {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
		}

		var details Details = CatDetails{IndoorOnly: req.IndoorOnly}
		if species == SpeciesDog {
			details = DogDetails{Size: req.Size}
		}

		p, err := svc.Create(r.Context(), shelterID, CreateInput{
			Name:               req.Name,
			Status:             status,
			Gender:             Gender(req.Gender),
			ShortDescription:   req.ShortDescription,
			Description:        req.Description,
			Age:                req.Age,
			InformationForTeam: req.InformationForTeam,
			Details:            details,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(r.Context(), svc, p))
	}
}

// getShelterPetHandler godoc
// @Summary      Mascota del refugio activo
// @Tags         management
// @Produce      json
// @Param        petID  path      int  true  "Pet ID"
// @Success      200    {object}  petResponse
// @Failure      404    {string}  string
// @Router       /management/pets/{petID} [get]
func getShelterPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.GetForShelter(r.Context(), shelterID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(r.Context(), svc, p))
	}
}

// updatePetHandler godoc
// @Summary      Editar mascota
// @Description  Campos ausentes no se tocan. Un cambio de estado notifica al equipo.
// @Tags         management
// @Accept       json
// @Produce      json
// @Param        petID  path      int               true  "Pet ID"
// @Param        body   body      updatePetRequest  true  "Campos a modificar"
// @Success      200    {object}  petResponse
// @Failure      400    {string}  string
// @Failure      404    {string}  string
// @Router       /management/pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		var req updatePetRequest
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

		in := UpdateInput{
			Name:               req.Name,
			ShortDescription:   req.ShortDescription,
			Description:        req.Description,
			Age:                req.Age,
			InformationForTeam: req.InformationForTeam,
		}
		if req.Status != nil {
			st, err := ParseStatus(*req.Status)
			if err != nil {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			in.Status = &st
		}
		if req.Gender != nil {
			g := Gender(*req.Gender)
			in.Gender = &g
		}

		if req.Size != nil || req.IndoorOnly != nil {
			current, err := svc.GetForShelter(r.Context(), shelterID, id)
			if err != nil {
				writeError(w, err)
				return
			}
			switch d := current.Details.(type) {
			case DogDetails:
				if req.IndoorOnly != nil {
					http.Error(w, "indoor_only only applies to cats", http.StatusBadRequest)
					return
				}
				d.Size = *req.Size
				in.Details = d
			case CatDetails:
				if req.Size != nil {
					http.Error(w, "size only applies to dogs", http.StatusBadRequest)
					return
				}
				d.IndoorOnly = *req.IndoorOnly
				in.Details = d
			}
		}

		p, err := svc.Update(r.Context(), shelterID, id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(r.Context(), svc, p))
	}
}

// uploadPhotoHandler godoc
// @Summary      Subir foto
// @Description  multipart/form-data con campo "photo" (jpeg, png o webp).
// @Tags         management
// @Accept       mpfd
// @Produce      json
// @Param        petID  path      int   true  "Pet ID"
// @Param        photo  formData  file  true  "Imagen"
// @Success      200    {object}  petResponse
// @Failure      400    {string}  string
// @Failure      413    {string}  string
// @Router       /management/pets/{petID}/photo [put]
// @Router       /management/pets/{petID}/profile-photos [post]
func uploadPhotoHandler(svc *Service, maxUpload int64, profile bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shelterID, _ := middleware.SelectedShelterID(r.Context())
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		if maxUpload > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "photo too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "missing photo", http.StatusBadRequest)
			return
		}
		defer file.Close()

		up := Upload{
			Body:        file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		}

		var p Pet
		if profile {
			p, err = svc.AddProfilePhoto(r.Context(), shelterID, id, up)
		} else {
			p, err = svc.SetPhoto(r.Context(), shelterID, id, up)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(r.Context(), svc, p))
	}
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid pet id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("page")
	if v == "" {
		return 1, true
	}
	page, err := strconv.Atoi(v)
	if err != nil || page < 1 {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return 0, false
	}
	return page, true
}

func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, ErrInvalidInput
		}
		out = append(out, id)
	}
	return out, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrShelterNotFound):
		http.Error(w, "shelter not found", http.StatusNotFound)
	case errors.Is(err, ErrPhotosDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(ctx context.Context, svc *Service, p Pet) petResponse {
	photos := make([]string, 0, len(p.ProfilePhotoKeys))
	for _, k := range p.ProfilePhotoKeys {
		photos = append(photos, svc.PhotoURL(ctx, k))
	}

	out := petResponse{
		ID:               p.ID,
		Name:             p.Name,
		PetType:          p.Species(),
		Status:           p.Status.String(),
		Gender:           p.Gender,
		Photo:            svc.PhotoURL(ctx, p.PhotoKey),
		ProfilePhotos:    photos,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Age:              p.Age,
		UpdatedAt:        p.UpdatedAt,

		InformationForTeam: p.InformationForTeam,
	}
	switch d := p.Details.(type) {
	case DogDetails:
		out.Size = d.Size
	case CatDetails:
		indoor := d.IndoorOnly
		out.IndoorOnly = &indoor
	}
	return out
}

// toListingResponse es la vista pública: nunca lleva la nota para el equipo.
func toListingResponse(ctx context.Context, svc *Service, l Listing) petResponse {
	out := toPetResponse(ctx, svc, l.Pet)
	out.InformationForTeam = ""
	sh := toShelterContact(l.Shelter)
	out.Shelter = &sh
	return out
}

func toShelterContact(sh ShelterSummary) shelterContactResponse {
	return shelterContactResponse{
		ID:    sh.ID,
		Name:  sh.Name,
		Email: sh.Email,
		Phone: sh.Phone,
	}
}

func toCatalogResponse(ctx context.Context, svc *Service, cp CatalogPage) catalogResponse {
	return catalogResponse{
		Page:    cp.Page,
		HasNext: cp.HasNext,
		Results: toListingResponses(ctx, svc, cp.Items),
	}
}

func toListingResponses(ctx context.Context, svc *Service, items []Listing) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, l := range items {
		out = append(out, toListingResponse(ctx, svc, l))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
