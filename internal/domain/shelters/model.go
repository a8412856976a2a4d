package shelters

import "time"

// Shelter publica mascotas. Solo los usuarios de su staff pueden seleccionarlo y gestionarlo.
type Shelter struct {
	ID          int64
	Name        string
	RegionID    int64
	Email       string
	Phone       string
	IsPublished bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
