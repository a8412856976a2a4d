package regions

import (
	"context"
	"time"
)

type Repository interface {
	ListCountries(ctx context.Context) ([]Country, error)
	ListRegions(ctx context.Context) ([]Region, error)
	GetByCode(ctx context.Context, code string) (Region, error)
	// CountPetsByCountry cuenta todas las mascotas de los refugios de cada país.
	CountPetsByCountry(ctx context.Context) (map[int64]int, error)
}

// Cache es opcional (Redis). found=false => miss.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}
