package memory

import (
	"context"
	"sort"

	"pet-adoption/internal/domain/choices"
	"pet-adoption/internal/domain/pets"
)

type choiceRepo struct{ s *Store }

func (r choiceRepo) Upsert(ctx context.Context, c choices.Choice) (choices.Choice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := choiceKey{userID: c.UserID, petID: c.PetID}
	if prev, ok := r.s.choices[k]; ok {
		c.CreatedAt = prev.CreatedAt
	}
	r.s.choices[k] = c
	return c, nil
}

func (r choiceRepo) ListByUser(ctx context.Context, userID int64) ([]choices.Choice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]choices.Choice, 0)
	for k, c := range r.s.choices {
		if k.userID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PetID < out[j].PetID })
	return out, nil
}

func (r choiceRepo) ListDogChoiceRows(ctx context.Context) ([]choices.ExportRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]choices.ExportRow, 0)
	for k, c := range r.s.choices {
		p, ok := r.s.pets[k.petID]
		if !ok || p.Species() != pets.SpeciesDog {
			continue
		}
		out = append(out, choices.ExportRow{
			PetID:           p.ID,
			PetCreatedAt:    p.CreatedAt,
			UserID:          k.userID,
			UserJoinedAt:    r.s.users[k.userID].DateJoined,
			IsFavorite:      c.IsFavorite,
			ChoiceCreatedAt: c.CreatedAt,
			ChoiceUpdatedAt: c.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ChoiceCreatedAt.Equal(out[j].ChoiceCreatedAt) {
			return out[i].ChoiceCreatedAt.Before(out[j].ChoiceCreatedAt)
		}
		return out[i].PetID < out[j].PetID
	})
	return out, nil
}
