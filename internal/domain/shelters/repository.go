package shelters

import "context"

type Repository interface {
	Create(ctx context.Context, s Shelter) (Shelter, error)
	GetByID(ctx context.Context, id int64) (Shelter, error)
	Update(ctx context.Context, s Shelter) error
	ListAll(ctx context.Context) ([]Shelter, error)

	// ListByStaff devuelve los refugios del usuario ordenados por id ascendente.
	ListByStaff(ctx context.Context, userID int64) ([]Shelter, error)
	IsStaff(ctx context.Context, shelterID, userID int64) (bool, error)
	// AddStaff es idempotente: added=false si ya era staff.
	AddStaff(ctx context.Context, shelterID, userID int64) (added bool, err error)
}
