package pets

import (
	"context"
	"io"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error)
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id int64) (Pet, error)
	GetListing(ctx context.Context, id int64) (Listing, error)

	// ListByShelter ordena por id descendente (más nuevas primero).
	ListByShelter(ctx context.Context, shelterID int64, f ManagementFilter, offset, limit int) ([]Pet, error)

	// ListCatalog ordena por id descendente.
	ListCatalog(ctx context.Context, q CatalogQuery, offset, limit int) ([]Listing, error)
	// GetShelterSummary devuelve ErrShelterNotFound si no existe.
	GetShelterSummary(ctx context.Context, shelterID int64) (ShelterSummary, error)

	// FindCandidates no garantiza orden.
	FindCandidates(ctx context.Context, q CandidateQuery) ([]Listing, error)

	// ListByIDs: since != nil => solo mascotas (o refugios) actualizados después.
	ListByIDs(ctx context.Context, ids []int64, since *time.Time) ([]Listing, error)
}

// PhotoStore guarda binarios de fotos (S3/minio o memoria).
type PhotoStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// URLResolver traduce una key de foto a URL pública o firmada.
type URLResolver interface {
	URL(ctx context.Context, key string) string
}

// StatusNotifier se entera de cambios de estado (mail al equipo).
type StatusNotifier interface {
	PetStatusChanged(ctx context.Context, l Listing, old Status)
}
