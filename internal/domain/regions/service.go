package regions

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("region not found")
)

const countriesCacheKey = "regions:countries"

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	log      logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// WithCache habilita la caché del listado de países.
func (s *Service) WithCache(c Cache, ttl time.Duration) *Service {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// ListCountries devuelve países ordenados por nombre, con sus regiones y el total de mascotas.
func (s *Service) ListCountries(ctx context.Context) ([]CountryListing, error) {
	if s.cache != nil {
		var cached []CountryListing
		found, err := s.cache.Get(ctx, countriesCacheKey, &cached)
		if err != nil {
			// La caché nunca tumba el request.
			s.log.Warn("regions cache get failed", map[string]any{"err": err})
		}
		if found {
			metrics.CacheHits.WithLabelValues("regions").Inc()
			return cached, nil
		}
		metrics.CacheMisses.WithLabelValues("regions").Inc()
	}

	countries, err := s.repo.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountPetsByCountry(ctx)
	if err != nil {
		return nil, err
	}

	byCountry := make(map[int64][]Region, len(countries))
	for _, r := range regions {
		byCountry[r.CountryID] = append(byCountry[r.CountryID], r)
	}

	out := make([]CountryListing, 0, len(countries))
	for _, c := range countries {
		rs := byCountry[c.ID]
		if rs == nil {
			rs = []Region{}
		}
		out = append(out, CountryListing{Country: c, Regions: rs, TotalPets: counts[c.ID]})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, countriesCacheKey, out, s.cacheTTL); err != nil {
			s.log.Warn("regions cache set failed", map[string]any{"err": err})
		}
	}
	return out, nil
}

// GetByCode busca la región ignorando mayúsculas y espacios.
func (s *Service) GetByCode(ctx context.Context, code string) (Region, error) {
	code = NormalizeCode(code)
	if code == "" {
		return Region{}, ErrInvalidInput
	}
	return s.repo.GetByCode(ctx, code)
}

func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// RegionExists recorre el catálogo; son pocas regiones.
func (s *Service) RegionExists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	all, err := s.repo.ListRegions(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range all {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}
