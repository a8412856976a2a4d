package adoptions

import (
	"context"
	"time"
)

type Repository interface {
	// GetOrCreate devuelve la solicitud existente de (UserID, PetID) o crea r.
	GetOrCreate(ctx context.Context, r Request) (Request, bool, error)
	GetEntry(ctx context.Context, id int64) (Entry, error)
	UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error
	// ListByShelter ordena por id descendente.
	ListByShelter(ctx context.Context, shelterID int64) ([]Entry, error)
}
