package pets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("pet not found")
	ErrShelterNotFound = errors.New("shelter not found")
	ErrPhotosDisabled  = errors.New("photo storage not configured")
)

const (
	// ManagementPageSize es el tamaño de página del listado del panel.
	ManagementPageSize = 100
	CatalogPageSize    = 24

	maxAge = 40
)

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Service struct {
	repo     Repository
	photos   PhotoStore
	urls     URLResolver
	notifier StatusNotifier
	log      logger.Logger

	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

type Option func(*Service)

func WithPhotos(store PhotoStore) Option { return func(s *Service) { s.photos = store } }

func WithURLResolver(r URLResolver) Option { return func(s *Service) { s.urls = r } }

func WithNotifier(n StatusNotifier) Option { return func(s *Service) { s.notifier = n } }

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		log:     logger.NewNop(),
		now:     time.Now,
		shuffle: rand.Shuffle,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GenerateInput son las entradas del generador de recomendaciones.
type GenerateInput struct {
	LikedIDs    []int64
	DislikedIDs []int64
	RegionID    int64   // 0 = sin filtro
	Species     Species // "" = sin filtro
}

// Generate devuelve todas las mascotas recomendables que el usuario aún no juzgó,
// en orden aleatorio. Sin límite: el caller pagina si quiere. IDs inexistentes
// en liked/disliked simplemente no excluyen nada.
func (s *Service) Generate(ctx context.Context, in GenerateInput) ([]Listing, error) {
	if in.Species != "" && in.Species != SpeciesDog && in.Species != SpeciesCat {
		return nil, ErrInvalidInput
	}
	if in.RegionID < 0 {
		return nil, ErrInvalidInput
	}

	items, err := s.repo.FindCandidates(ctx, CandidateQuery{
		Exclude:  judgedSet(in.LikedIDs, in.DislikedIDs),
		RegionID: in.RegionID,
		Species:  in.Species,
	})
	if err != nil {
		return nil, err
	}

	s.shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	metrics.GeneratedCandidates.Observe(float64(len(items)))
	return items, nil
}

// judgedSet une liked y disliked, sin duplicados, ordenado.
func judgedSet(liked, disliked []int64) []int64 {
	out := make([]int64, 0, len(liked)+len(disliked))
	out = append(out, liked...)
	out = append(out, disliked...)
	slices.Sort(out)
	return slices.Compact(out)
}

// ListByIDs es el filtro público por ids (sync de la app). ids es obligatorio.
func (s *Service) ListByIDs(ctx context.Context, ids []int64, since *time.Time) ([]Listing, error) {
	if len(ids) == 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByIDs(ctx, judgedSet(ids, nil), since)
}

// GetPublic devuelve el perfil público; un refugio no publicado se ve como inexistente.
func (s *Service) GetPublic(ctx context.Context, id int64) (Listing, error) {
	l, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	if !l.Shelter.IsPublished {
		return Listing{}, ErrNotFound
	}
	return l, nil
}

func (s *Service) GetListing(ctx context.Context, id int64) (Listing, error) {
	return s.repo.GetListing(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForShelter(ctx context.Context, shelterID int64, f ManagementFilter, page int) ([]Pet, error) {
	if f.Species != "" && f.Species != SpeciesDog && f.Species != SpeciesCat {
		return nil, ErrInvalidInput
	}
	if (f.Status != 0 && !f.Status.Valid()) || !validGender(f.Gender) {
		return nil, ErrInvalidInput
	}
	f.Query = strings.TrimSpace(f.Query)
	if page < 1 {
		page = 1
	}
	return s.repo.ListByShelter(ctx, shelterID, f, (page-1)*ManagementPageSize, ManagementPageSize)
}

// Catalog pagina las mascotas disponibles de todos los refugios publicados.
func (s *Service) Catalog(ctx context.Context, species Species, page int) (CatalogPage, error) {
	if species != "" && species != SpeciesDog && species != SpeciesCat {
		return CatalogPage{}, ErrInvalidInput
	}
	return s.catalogPage(ctx, CatalogQuery{Species: species}, page)
}

// ShelterCatalog es el perfil público de un refugio con sus mascotas disponibles.
// Un refugio no publicado se ve como inexistente.
func (s *Service) ShelterCatalog(ctx context.Context, shelterID int64, page int) (ShelterSummary, CatalogPage, error) {
	if shelterID <= 0 {
		return ShelterSummary{}, CatalogPage{}, ErrShelterNotFound
	}
	sh, err := s.repo.GetShelterSummary(ctx, shelterID)
	if err != nil {
		return ShelterSummary{}, CatalogPage{}, err
	}
	if !sh.IsPublished {
		return ShelterSummary{}, CatalogPage{}, ErrShelterNotFound
	}

	cp, err := s.catalogPage(ctx, CatalogQuery{ShelterID: shelterID}, page)
	if err != nil {
		return ShelterSummary{}, CatalogPage{}, err
	}
	return sh, cp, nil
}

// catalogPage pide un elemento de más para saber si hay página siguiente.
func (s *Service) catalogPage(ctx context.Context, q CatalogQuery, page int) (CatalogPage, error) {
	if page < 1 {
		page = 1
	}
	items, err := s.repo.ListCatalog(ctx, q, (page-1)*CatalogPageSize, CatalogPageSize+1)
	if err != nil {
		return CatalogPage{}, err
	}

	out := CatalogPage{Items: items, Page: page}
	if len(items) > CatalogPageSize {
		out.Items = items[:CatalogPageSize]
		out.HasNext = true
	}
	return out, nil
}

type CreateInput struct {
	Name               string
	Status             Status
	Gender             Gender
	ShortDescription   string
	Description        string
	Age                *int
	InformationForTeam string
	Details            Details
}

func (s *Service) Create(ctx context.Context, shelterID int64, in CreateInput) (Pet, error) {
	if shelterID <= 0 || strings.TrimSpace(in.Name) == "" || SpeciesOf(in.Details) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Status == 0 {
		in.Status = StatusAvailable
	}
	if !in.Status.Valid() || !validGender(in.Gender) || !validAge(in.Age) || !validDetails(in.Details) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, Pet{
		ShelterID:          shelterID,
		Name:               strings.TrimSpace(in.Name),
		Status:             in.Status,
		Gender:             in.Gender,
		ShortDescription:   strings.TrimSpace(in.ShortDescription),
		Description:        strings.TrimSpace(in.Description),
		Age:                in.Age,
		InformationForTeam: strings.TrimSpace(in.InformationForTeam),
		ProfilePhotoKeys:   []string{},
		Details:            in.Details,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
}

// GetForShelter oculta (ErrNotFound) mascotas de otros refugios.
func (s *Service) GetForShelter(ctx context.Context, shelterID, id int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.ShelterID != shelterID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

// UpdateInput: nil = no tocar. Details reemplaza la variante completa (no cambia especie).
type UpdateInput struct {
	Name               *string
	Status             *Status
	Gender             *Gender
	ShortDescription   *string
	Description        *string
	Age                *int
	InformationForTeam *string
	Details            Details
}

func (s *Service) Update(ctx context.Context, shelterID, id int64, in UpdateInput) (Pet, error) {
	p, err := s.GetForShelter(ctx, shelterID, id)
	if err != nil {
		return Pet{}, err
	}
	old := p.Status

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return Pet{}, ErrInvalidInput
		}
		p.Status = *in.Status
	}
	if in.Gender != nil {
		if !validGender(*in.Gender) {
			return Pet{}, ErrInvalidInput
		}
		p.Gender = *in.Gender
	}
	if in.ShortDescription != nil {
		p.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Age != nil {
		if !validAge(in.Age) {
			return Pet{}, ErrInvalidInput
		}
		age := *in.Age
		p.Age = &age
	}
	if in.InformationForTeam != nil {
		p.InformationForTeam = strings.TrimSpace(*in.InformationForTeam)
	}
	if in.Details != nil {
		if SpeciesOf(in.Details) != p.Species() || !validDetails(in.Details) {
			return Pet{}, ErrInvalidInput
		}
		p.Details = in.Details
	}

	if err := s.save(ctx, p, old); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// ChangeStatus lo usan las solicitudes de adopción; no valida refugio.
func (s *Service) ChangeStatus(ctx context.Context, id int64, status Status) (Pet, error) {
	if !status.Valid() {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.Status == status {
		return p, nil
	}

	old := p.Status
	p.Status = status
	if err := s.save(ctx, p, old); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) save(ctx context.Context, p Pet, old Status) error {
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	if p.Status != old && s.notifier != nil {
		l, err := s.repo.GetListing(ctx, p.ID)
		if err != nil {
			s.log.Warn("status notification skipped", map[string]any{"pet_id": p.ID, "err": err})
			return nil
		}
		s.notifier.PetStatusChanged(ctx, l, old)
	}
	return nil
}

// Upload es una foto recibida por el panel.
type Upload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// SetPhoto reemplaza la foto principal.
func (s *Service) SetPhoto(ctx context.Context, shelterID, id int64, up Upload) (Pet, error) {
	p, key, err := s.storePhoto(ctx, shelterID, id, "photo", up)
	if err != nil {
		return Pet{}, err
	}
	p.PhotoKey = key
	if err := s.save(ctx, p, p.Status); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// AddProfilePhoto agrega una foto al final de la galería.
func (s *Service) AddProfilePhoto(ctx context.Context, shelterID, id int64, up Upload) (Pet, error) {
	p, key, err := s.storePhoto(ctx, shelterID, id, "profile", up)
	if err != nil {
		return Pet{}, err
	}
	p.ProfilePhotoKeys = append(p.ProfilePhotoKeys, key)
	if err := s.save(ctx, p, p.Status); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) storePhoto(ctx context.Context, shelterID, id int64, kind string, up Upload) (Pet, string, error) {
	if s.photos == nil {
		return Pet{}, "", ErrPhotosDisabled
	}
	ext, ok := photoExtensions[up.ContentType]
	if !ok || up.Body == nil || up.Size <= 0 {
		return Pet{}, "", ErrInvalidInput
	}

	p, err := s.GetForShelter(ctx, shelterID, id)
	if err != nil {
		return Pet{}, "", err
	}

	key := fmt.Sprintf("pets/%d/%s-%s.%s", p.ID, kind, uuid.NewString(), ext)
	if err := s.photos.Put(ctx, key, up.Body, up.Size, up.ContentType); err != nil {
		return Pet{}, "", fmt.Errorf("store photo: %w", err)
	}
	return p, key, nil
}

// PhotoURL devuelve "" si no hay key o no hay resolver.
func (s *Service) PhotoURL(ctx context.Context, key string) string {
	if key == "" || s.urls == nil {
		return ""
	}
	return s.urls.URL(ctx, key)
}

func validGender(g Gender) bool {
	return g == "" || g == GenderMale || g == GenderFemale
}

func validAge(age *int) bool {
	return age == nil || (*age >= 0 && *age <= maxAge)
}

func validDetails(d Details) bool {
	switch v := d.(type) {
	case DogDetails:
		return v.Size == "" || v.Size == DogSizeSmall || v.Size == DogSizeMedium || v.Size == DogSizeLarge
	case CatDetails:
		return true
	default:
		return false
	}
}
