package memory

import (
	"context"
	"sort"
	"time"

	"pet-adoption/internal/domain/adoptions"
)

type adoptionRepo struct{ s *Store }

func (r adoptionRepo) GetOrCreate(ctx context.Context, req adoptions.Request) (adoptions.Request, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.requests {
		if existing.UserID == req.UserID && existing.PetID == req.PetID {
			return existing, false, nil
		}
	}
	req.ID = r.s.nextID("requests")
	r.s.requests[req.ID] = req
	return req, true, nil
}

func (r adoptionRepo) GetEntry(ctx context.Context, id int64) (adoptions.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requests[id]
	if !ok {
		return adoptions.Entry{}, adoptions.ErrNotFound
	}
	return r.entry(req), nil
}

// entry requiere el lock de lectura.
func (r adoptionRepo) entry(req adoptions.Request) adoptions.Entry {
	p := r.s.pets[req.PetID]
	u := r.s.users[req.UserID]
	return adoptions.Entry{
		Request:   req,
		ShelterID: p.ShelterID,
		PetName:   p.Name,
		Username:  u.Username,
		UserEmail: u.Email,
	}
}

func (r adoptionRepo) UpdateStatus(ctx context.Context, id int64, status adoptions.Status, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.requests[id]
	if !ok {
		return adoptions.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = at
	r.s.requests[id] = req
	return nil
}

func (r adoptionRepo) ListByShelter(ctx context.Context, shelterID int64) ([]adoptions.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]adoptions.Entry, 0)
	for _, req := range r.s.requests {
		if e := r.entry(req); e.ShelterID == shelterID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
