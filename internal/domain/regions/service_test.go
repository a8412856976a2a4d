package regions

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	countries []Country
	regions   []Region
	counts    map[int64]int
	calls     int
}

func (r *testRepo) ListCountries(ctx context.Context) ([]Country, error) {
	r.calls++
	return r.countries, nil
}

func (r *testRepo) ListRegions(ctx context.Context) ([]Region, error) { return r.regions, nil }

func (r *testRepo) GetByCode(ctx context.Context, code string) (Region, error) {
	for _, rg := range r.regions {
		if rg.Code == code {
			return rg, nil
		}
	}
	return Region{}, ErrNotFound
}

func (r *testRepo) CountPetsByCountry(ctx context.Context) (map[int64]int, error) {
	return r.counts, nil
}

// memCache guarda el valor tal cual; solo soporta []CountryListing.
type memCache struct {
	data map[string][]CountryListing
}

func (c *memCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(dst.(*[]CountryListing)) = v
	return true, nil
}

func (c *memCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.data[key] = v.([]CountryListing)
	return nil
}

func newTestRepo() *testRepo {
	return &testRepo{
		countries: []Country{{ID: 1, Name: "Lithuania", Code: "lt"}, {ID: 2, Name: "Latvia", Code: "lv"}},
		regions: []Region{
			{ID: 10, Name: "Vilnius", Code: "vilnius", CountryID: 1},
			{ID: 11, Name: "Kaunas", Code: "kaunas", CountryID: 1},
		},
		counts: map[int64]int{1: 7},
	}
}

func TestService_ListCountries_GroupsRegionsAndCounts(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	items, err := svc.ListCountries(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(items))
	}
	if len(items[0].Regions) != 2 || items[0].TotalPets != 7 {
		t.Fatalf("unexpected lithuania listing: %+v", items[0])
	}
	if items[1].Regions == nil || len(items[1].Regions) != 0 || items[1].TotalPets != 0 {
		t.Fatalf("latvia should have empty regions and zero pets: %+v", items[1])
	}
}

func TestService_ListCountries_UsesCache(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil).WithCache(&memCache{data: map[string][]CountryListing{}}, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := svc.ListCountries(context.Background()); err != nil {
			t.Fatalf("list #%d: %v", i+1, err)
		}
	}
	if repo.calls != 1 {
		t.Fatalf("expected repo to be hit once, got %d", repo.calls)
	}
}

func TestService_GetByCode_Normalizes(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	rg, err := svc.GetByCode(context.Background(), "  Vilnius ")
	if err != nil || rg.ID != 10 {
		t.Fatalf("expected vilnius, got %+v err=%v", rg, err)
	}
	if _, err := svc.GetByCode(context.Background(), "riga"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByCode(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_RegionExists(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	ctx := context.Background()

	for id, want := range map[int64]bool{10: true, 11: true, 12: false, 0: false} {
		got, err := svc.RegionExists(ctx, id)
		if err != nil || got != want {
			t.Fatalf("region %d: expected %v, got %v err=%v", id, want, got, err)
		}
	}
}
