package memory

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
)

type petRepo struct{ s *Store }

// clonePet evita que quien llama comparta el slice de fotos o la edad con el Store.
func clonePet(p pets.Pet) pets.Pet {
	p.ProfilePhotoKeys = slices.Clone(p.ProfilePhotoKeys)
	if p.ProfilePhotoKeys == nil {
		p.ProfilePhotoKeys = []string{}
	}
	if p.Age != nil {
		age := *p.Age
		p.Age = &age
	}
	return p
}

func (r petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.nextID("pets")
	r.s.pets[p.ID] = clonePet(p)
	return clonePet(p), nil
}

func (r petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = clonePet(p)
	return nil
}

func (r petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r petRepo) GetListing(ctx context.Context, id int64) (pets.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Listing{}, pets.ErrNotFound
	}
	return r.listing(p), nil
}

// listing requiere el lock de lectura.
func (r petRepo) listing(p pets.Pet) pets.Listing {
	return pets.Listing{
		Pet:     clonePet(p),
		Shelter: shelterSummary(r.s.shelters[p.ShelterID]),
	}
}

func shelterSummary(sh shelters.Shelter) pets.ShelterSummary {
	return pets.ShelterSummary{
		ID:          sh.ID,
		Name:        sh.Name,
		Email:       sh.Email,
		Phone:       sh.Phone,
		RegionID:    sh.RegionID,
		IsPublished: sh.IsPublished,
		UpdatedAt:   sh.UpdatedAt,
	}
}

func (r petRepo) GetShelterSummary(ctx context.Context, shelterID int64) (pets.ShelterSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sh, ok := r.s.shelters[shelterID]
	if !ok {
		return pets.ShelterSummary{}, pets.ErrShelterNotFound
	}
	return shelterSummary(sh), nil
}

func (r petRepo) ListByShelter(ctx context.Context, shelterID int64, f pets.ManagementFilter, offset, limit int) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.ShelterID == shelterID && f.Matches(p) {
			out = append(out, clonePet(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, offset, limit), nil
}

func (r petRepo) ListCatalog(ctx context.Context, q pets.CatalogQuery, offset, limit int) ([]pets.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Listing, 0)
	for _, p := range r.s.pets {
		if p.Status != pets.StatusAvailable {
			continue
		}
		if q.ShelterID != 0 && p.ShelterID != q.ShelterID {
			continue
		}
		if q.Species != "" && p.Species() != q.Species {
			continue
		}
		if sh, ok := r.s.shelters[p.ShelterID]; !ok || !sh.IsPublished {
			continue
		}
		out = append(out, r.listing(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pet.ID > out[j].Pet.ID })
	return paginate(out, offset, limit), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func (r petRepo) FindCandidates(ctx context.Context, q pets.CandidateQuery) ([]pets.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Listing, 0)
	for _, p := range r.s.pets {
		if p.Status != pets.StatusAvailable {
			continue
		}
		sh, ok := r.s.shelters[p.ShelterID]
		if !ok || !sh.IsPublished {
			continue
		}
		if q.RegionID != 0 && sh.RegionID != q.RegionID {
			continue
		}
		if q.Species != "" && p.Species() != q.Species {
			continue
		}
		if slices.Contains(q.Exclude, p.ID) {
			continue
		}
		out = append(out, r.listing(p))
	}
	return out, nil
}

func (r petRepo) ListByIDs(ctx context.Context, ids []int64, since *time.Time) ([]pets.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Listing, 0, len(ids))
	for _, id := range ids {
		p, ok := r.s.pets[id]
		if !ok {
			continue
		}
		l := r.listing(p)
		if since != nil && !l.Pet.UpdatedAt.After(*since) && !l.Shelter.UpdatedAt.After(*since) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pet.ID < out[j].Pet.ID })
	return out, nil
}

// PhotoStore guarda fotos en memoria. Sirve de pets.PhotoStore cuando no hay S3.
type PhotoStore struct {
	mu    sync.RWMutex
	files map[string]photo
}

type photo struct {
	body        []byte
	contentType string
}

func NewPhotoStore() *PhotoStore {
	return &PhotoStore{files: make(map[string]photo)}
}

func (p *PhotoStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(body, size)); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[key] = photo{body: buf.Bytes(), contentType: contentType}
	return nil
}

// Get devuelve el contenido guardado; ok=false si la key no existe.
func (p *PhotoStore) Get(key string) (body []byte, contentType string, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	f, ok := p.files[key]
	return f.body, f.contentType, ok
}
