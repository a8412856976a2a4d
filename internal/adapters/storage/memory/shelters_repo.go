package memory

import (
	"context"
	"sort"

	"pet-adoption/internal/domain/shelters"
)

type shelterRepo struct{ s *Store }

func (r shelterRepo) Create(ctx context.Context, sh shelters.Shelter) (shelters.Shelter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh.ID = r.s.nextID("shelters")
	r.s.shelters[sh.ID] = sh
	return sh, nil
}

func (r shelterRepo) GetByID(ctx context.Context, id int64) (shelters.Shelter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sh, ok := r.s.shelters[id]
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return sh, nil
}

func (r shelterRepo) Update(ctx context.Context, sh shelters.Shelter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shelters[sh.ID]; !ok {
		return shelters.ErrNotFound
	}
	r.s.shelters[sh.ID] = sh
	return nil
}

func (r shelterRepo) ListAll(ctx context.Context) ([]shelters.Shelter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.list(func(shelters.Shelter) bool { return true }), nil
}

func (r shelterRepo) ListByStaff(ctx context.Context, userID int64) ([]shelters.Shelter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.list(func(sh shelters.Shelter) bool { return r.s.staff[sh.ID][userID] }), nil
}

// list requiere el lock de lectura.
func (r shelterRepo) list(keep func(shelters.Shelter) bool) []shelters.Shelter {
	out := make([]shelters.Shelter, 0)
	for _, sh := range r.s.shelters {
		if keep(sh) {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r shelterRepo) IsStaff(ctx context.Context, shelterID, userID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.staff[shelterID][userID], nil
}

func (r shelterRepo) AddStaff(ctx context.Context, shelterID, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shelters[shelterID]; !ok {
		return false, shelters.ErrNotFound
	}
	if r.s.staff[shelterID] == nil {
		r.s.staff[shelterID] = make(map[int64]bool)
	}
	if r.s.staff[shelterID][userID] {
		return false, nil
	}
	r.s.staff[shelterID][userID] = true
	return true, nil
}
