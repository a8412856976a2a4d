package shelters

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"
)

type testRepo struct {
	nextID int64
	byID   map[int64]Shelter
	staff  map[int64]map[int64]bool // shelterID -> userID
	err    error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Shelter{}, staff: map[int64]map[int64]bool{}}
}

func (r *testRepo) Create(ctx context.Context, s Shelter) (Shelter, error) {
	r.nextID++
	s.ID = r.nextID
	r.byID[s.ID] = s
	return s, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Shelter, error) {
	s, ok := r.byID[id]
	if !ok {
		return Shelter{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) Update(ctx context.Context, s Shelter) error {
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Shelter, error) {
	out := make([]Shelter, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) ListByStaff(ctx context.Context, userID int64) ([]Shelter, error) {
	if r.err != nil {
		return nil, r.err
	}
	all, _ := r.ListAll(ctx)
	out := make([]Shelter, 0)
	for _, s := range all {
		if r.staff[s.ID][userID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) IsStaff(ctx context.Context, shelterID, userID int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.staff[shelterID][userID], nil
}

func (r *testRepo) AddStaff(ctx context.Context, shelterID, userID int64) (bool, error) {
	if r.staff[shelterID] == nil {
		r.staff[shelterID] = map[int64]bool{}
	}
	if r.staff[shelterID][userID] {
		return false, nil
	}
	r.staff[shelterID][userID] = true
	return true, nil
}

// S1 con staff U=10; S2 sin staff.
func newScenario(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	s1, _ := svc.Create(ctx, CreateInput{Name: "Lesė", RegionID: 1, IsPublished: true})
	_, _ = svc.Create(ctx, CreateInput{Name: "SOS gyvūnai", RegionID: 1, IsPublished: true})
	if _, err := svc.AddStaff(ctx, s1.ID, 10); err != nil {
		t.Fatalf("add staff: %v", err)
	}
	return svc, repo
}

func TestService_ResolveSelected_Scenarios(t *testing.T) {
	svc, _ := newScenario(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		userID int64
		cookie string
		wantID int64
		wantOK bool
	}{
		{"staff with foreign cookie falls back", 10, "2", 1, true},
		{"staff with own cookie", 10, "1", 1, true},
		{"staff without cookie", 10, "", 1, true},
		{"garbage cookie", 10, "not-a-number", 1, true},
		{"negative cookie", 10, "-1", 1, true},
		{"anonymous with cookie", 0, "1", 0, false},
		{"user without shelters", 11, "1", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok, err := svc.ResolveSelected(ctx, tc.userID, tc.cookie)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tc.wantID || ok != tc.wantOK {
				t.Fatalf("expected (%d,%v), got (%d,%v)", tc.wantID, tc.wantOK, id, ok)
			}
		})
	}
}

func TestService_ResolveSelected_NeverReturnsForeignShelter(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = svc.Create(ctx, CreateInput{Name: "S" + strconv.Itoa(i), RegionID: 1})
	}
	_, _ = repo.AddStaff(ctx, 2, 7)
	_, _ = repo.AddStaff(ctx, 4, 7)

	for cookie := int64(0); cookie <= 6; cookie++ {
		id, ok, err := svc.ResolveSelected(ctx, 7, strconv.FormatInt(cookie, 10))
		if err != nil || !ok {
			t.Fatalf("cookie=%d: expected a shelter, got ok=%v err=%v", cookie, ok, err)
		}
		if !repo.staff[id][7] {
			t.Fatalf("cookie=%d resolved to foreign shelter %d", cookie, id)
		}
		if (cookie == 2 || cookie == 4) && id != cookie {
			t.Fatalf("cookie=%d should be honoured, got %d", cookie, id)
		}
	}
}

func TestService_ResolveSelected_DeterministicWithoutCookie(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = svc.Create(ctx, CreateInput{Name: "S", RegionID: 1})
	}
	_, _ = repo.AddStaff(ctx, 3, 1)
	_, _ = repo.AddStaff(ctx, 2, 1)

	for i := 0; i < 10; i++ {
		id, _, _ := svc.ResolveSelected(ctx, 1, "")
		if id != 2 {
			t.Fatalf("expected first shelter by id (2), got %d", id)
		}
	}
}

func TestService_ResolveSelected_PropagatesRepoError(t *testing.T) {
	svc, repo := newScenario(t)
	repo.err = errors.New("db down")

	if _, _, err := svc.ResolveSelected(context.Background(), 10, "1"); err == nil {
		t.Fatalf("expected repo error")
	}
}

func TestService_Switch(t *testing.T) {
	svc, _ := newScenario(t)
	ctx := context.Background()

	if _, err := svc.Switch(ctx, 10, 2); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	sh, err := svc.Switch(ctx, 10, 1)
	if err != nil || sh.ID != 1 {
		t.Fatalf("expected shelter 1, got %+v err=%v", sh, err)
	}
}

func TestService_UpdateInfo(t *testing.T) {
	svc, repo := newScenario(t)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	email := " INFO@Lese.LT "
	empty := " "
	if _, err := svc.UpdateInfo(context.Background(), 1, UpdateInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	sh, err := svc.UpdateInfo(context.Background(), 1, UpdateInput{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if sh.Email != "info@lese.lt" || sh.Name != "Lesė" || !sh.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected shelter after update: %+v", sh)
	}
	if repo.byID[1].Email != "info@lese.lt" {
		t.Fatalf("update not persisted")
	}
}

func TestService_ConnectSuperusers(t *testing.T) {
	svc, _ := newScenario(t)
	ctx := context.Background()

	n, err := svc.ConnectSuperusers(ctx, []int64{10, 20})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	// 10 ya era staff de S1: nuevas = (S1,20), (S2,10), (S2,20).
	if n != 3 {
		t.Fatalf("expected 3 new links, got %d", n)
	}

	n, _ = svc.ConnectSuperusers(ctx, []int64{10, 20})
	if n != 0 {
		t.Fatalf("second run should be a no-op, got %d", n)
	}
}

type regionSet map[int64]bool

func (r regionSet) RegionExists(ctx context.Context, id int64) (bool, error) {
	return r[id], nil
}

func TestService_UpdateInfo_Region(t *testing.T) {
	svc, repo := newScenario(t)
	svc.WithRegions(regionSet{1: true, 2: true})
	ctx := context.Background()

	unknown := int64(99)
	if _, err := svc.UpdateInfo(ctx, 1, UpdateInput{RegionID: &unknown}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown region, got %v", err)
	}
	if repo.byID[1].RegionID != 1 {
		t.Fatalf("rejected region must not be stored")
	}

	kaunas := int64(2)
	sh, err := svc.UpdateInfo(ctx, 1, UpdateInput{RegionID: &kaunas})
	if err != nil || sh.RegionID != 2 || repo.byID[1].RegionID != 2 {
		t.Fatalf("expected region 2, got %+v err=%v", sh, err)
	}

	if _, err := svc.Create(ctx, CreateInput{Name: "Naujas", RegionID: 99}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("create with unknown region: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_ListPublished(t *testing.T) {
	svc, _ := newScenario(t)
	ctx := context.Background()
	_, _ = svc.Create(ctx, CreateInput{Name: "Draft", RegionID: 1})
	_, _ = svc.Create(ctx, CreateInput{Name: "Beglobis", RegionID: 1, IsPublished: true})

	list, err := svc.ListPublished(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := make([]string, 0, len(list))
	for _, sh := range list {
		names = append(names, sh.Name)
	}
	if len(names) != 3 || names[0] != "Beglobis" || names[1] != "Lesė" || names[2] != "SOS gyvūnai" {
		t.Fatalf("unexpected published shelters %v", names)
	}
}
