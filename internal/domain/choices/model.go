package choices

import "time"

// Choice es la decisión (swipe) de un usuario sobre una mascota. Única por (usuario, mascota).
type Choice struct {
	UserID     int64
	PetID      int64
	IsFavorite bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExportRow es una fila del export de decisiones sobre perros.
type ExportRow struct {
	PetID           int64
	PetCreatedAt    time.Time
	UserID          int64
	UserJoinedAt    time.Time
	IsFavorite      bool
	ChoiceCreatedAt time.Time
	ChoiceUpdatedAt time.Time
}
