package memory

import (
	"context"
	"sort"
	"strings"

	"pet-adoption/internal/domain/regions"
)

type regionRepo struct{ s *Store }

// AddCountry y AddRegion cargan el catálogo (fijo en producción, vía migraciones).
func (s *Store) AddCountry(name, code string) regions.Country {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := regions.Country{ID: s.nextID("countries"), Name: name, Code: strings.ToLower(code)}
	s.countries[c.ID] = c
	return c
}

func (s *Store) AddRegion(countryID int64, name, code string) regions.Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := regions.Region{ID: s.nextID("regions"), Name: name, Code: strings.ToLower(code), CountryID: countryID}
	s.regions[r.ID] = r
	return r
}

// SeedDefaultRegions carga Lituania con sus ciudades principales.
func (s *Store) SeedDefaultRegions() {
	lt := s.AddCountry("Lietuva", "lt")
	for _, r := range [][2]string{
		{"Vilnius", "vilnius"},
		{"Kaunas", "kaunas"},
		{"Klaipėda", "klaipeda"},
		{"Šiauliai", "siauliai"},
		{"Panevėžys", "panevezys"},
	} {
		s.AddRegion(lt.ID, r[0], r[1])
	}
}

func (r regionRepo) ListCountries(ctx context.Context) ([]regions.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]regions.Country, 0, len(r.s.countries))
	for _, c := range r.s.countries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r regionRepo) ListRegions(ctx context.Context) ([]regions.Region, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]regions.Region, 0, len(r.s.regions))
	for _, rg := range r.s.regions {
		out = append(out, rg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r regionRepo) GetByCode(ctx context.Context, code string) (regions.Region, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rg := range r.s.regions {
		if rg.Code == code {
			return rg, nil
		}
	}
	return regions.Region{}, regions.ErrNotFound
}

func (r regionRepo) CountPetsByCountry(ctx context.Context) (map[int64]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[int64]int)
	for _, p := range r.s.pets {
		sh, ok := r.s.shelters[p.ShelterID]
		if !ok {
			continue
		}
		if rg, ok := r.s.regions[sh.RegionID]; ok {
			out[rg.CountryID]++
		}
	}
	return out, nil
}
