package pets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"testing"
	"time"
)

type testRepo struct {
	nextID     int64
	pets       map[int64]Pet
	shelters   map[int64]ShelterSummary
	err        error
	lastFilter ManagementFilter
}

func newTestRepo() *testRepo {
	return &testRepo{pets: map[int64]Pet{}, shelters: map[int64]ShelterSummary{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) (Pet, error) {
	r.nextID++
	p.ID = r.nextID
	r.pets[p.ID] = p
	return p, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.pets[p.ID]; !ok {
		return ErrNotFound
	}
	r.pets[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetListing(ctx context.Context, id int64) (Listing, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Pet: p, Shelter: r.shelters[p.ShelterID]}, nil
}

func (r *testRepo) ListByShelter(ctx context.Context, shelterID int64, f ManagementFilter, offset, limit int) ([]Pet, error) {
	r.lastFilter = f
	var out []Pet
	for _, p := range r.pets {
		if p.ShelterID == shelterID && f.Matches(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Pet) int { return int(b.ID - a.ID) })
	if offset >= len(out) {
		return []Pet{}, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r *testRepo) ListCatalog(ctx context.Context, q CatalogQuery, offset, limit int) ([]Listing, error) {
	var out []Listing
	for _, p := range r.pets {
		sh := r.shelters[p.ShelterID]
		switch {
		case p.Status != StatusAvailable, !sh.IsPublished:
		case q.ShelterID != 0 && p.ShelterID != q.ShelterID:
		case q.Species != "" && p.Species() != q.Species:
		default:
			out = append(out, Listing{Pet: p, Shelter: sh})
		}
	}
	slices.SortFunc(out, func(a, b Listing) int { return int(b.Pet.ID - a.Pet.ID) })
	if offset >= len(out) {
		return []Listing{}, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r *testRepo) GetShelterSummary(ctx context.Context, shelterID int64) (ShelterSummary, error) {
	sh, ok := r.shelters[shelterID]
	if !ok {
		return ShelterSummary{}, ErrShelterNotFound
	}
	return sh, nil
}

func (r *testRepo) FindCandidates(ctx context.Context, q CandidateQuery) ([]Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []Listing
	for _, p := range r.pets {
		sh := r.shelters[p.ShelterID]
		switch {
		case p.Status != StatusAvailable, !sh.IsPublished:
		case slices.Contains(q.Exclude, p.ID):
		case q.RegionID != 0 && sh.RegionID != q.RegionID:
		case q.Species != "" && p.Species() != q.Species:
		default:
			out = append(out, Listing{Pet: p, Shelter: sh})
		}
	}
	return out, nil
}

func (r *testRepo) ListByIDs(ctx context.Context, ids []int64, since *time.Time) ([]Listing, error) {
	var out []Listing
	for _, id := range ids {
		p, ok := r.pets[id]
		if !ok {
			continue
		}
		sh := r.shelters[p.ShelterID]
		if since != nil && !p.UpdatedAt.After(*since) && !sh.UpdatedAt.After(*since) {
			continue
		}
		out = append(out, Listing{Pet: p, Shelter: sh})
	}
	return out, nil
}

type recordingNotifier struct {
	calls []Status
	pet   []string
}

func (n *recordingNotifier) PetStatusChanged(ctx context.Context, l Listing, old Status) {
	n.calls = append(n.calls, old)
	n.pet = append(n.pet, l.Pet.Name)
}

type memPhotos struct {
	keys map[string][]byte
}

func (m *memPhotos) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.keys[key] = b
	return nil
}

func (r *testRepo) add(shelterID int64, name string, status Status, d Details) Pet {
	p, _ := r.Create(context.Background(), Pet{ShelterID: shelterID, Name: name, Status: status, Details: d})
	return p
}

func ids(items []Listing) []int64 {
	out := make([]int64, 0, len(items))
	for _, l := range items {
		out = append(out, l.Pet.ID)
	}
	slices.Sort(out)
	return out
}

func noShuffle(svc *Service) { svc.shuffle = func(int, func(i, j int)) {} }

func TestService_Generate_OnlyAvailableFromPublishedShelters(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, Name: "S1", IsPublished: true, RegionID: 10}
	repo.shelters[2] = ShelterSummary{ID: 2, Name: "S2", IsPublished: false, RegionID: 10}

	p1 := repo.add(1, "P1", StatusAvailable, DogDetails{})
	repo.add(2, "P2", StatusAvailable, DogDetails{})
	repo.add(1, "P3", StatusTakenPermanently, DogDetails{})

	svc := NewService(repo)
	items, err := svc.Generate(context.Background(), GenerateInput{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := ids(items); !slices.Equal(got, []int64{p1.ID}) {
		t.Fatalf("expected only P1, got %v", got)
	}
	if items[0].Shelter.Name != "S1" {
		t.Fatalf("listing should carry shelter contact, got %+v", items[0].Shelter)
	}
}

func TestService_Generate_ExcludesJudgedPets(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, IsPublished: true}
	a := repo.add(1, "A", StatusAvailable, DogDetails{})
	b := repo.add(1, "B", StatusAvailable, CatDetails{})
	c := repo.add(1, "C", StatusAvailable, DogDetails{})

	svc := NewService(repo)
	items, err := svc.Generate(context.Background(), GenerateInput{
		LikedIDs:    []int64{a.ID, 999},
		DislikedIDs: []int64{b.ID, a.ID},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := ids(items); !slices.Equal(got, []int64{c.ID}) {
		t.Fatalf("expected only C, got %v", got)
	}
}

func TestService_Generate_Filters(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, IsPublished: true, RegionID: 10}
	repo.shelters[2] = ShelterSummary{ID: 2, IsPublished: true, RegionID: 20}
	dog10 := repo.add(1, "dog10", StatusAvailable, DogDetails{Size: DogSizeSmall})
	cat10 := repo.add(1, "cat10", StatusAvailable, CatDetails{})
	dog20 := repo.add(2, "dog20", StatusAvailable, DogDetails{})

	svc := NewService(repo)
	ctx := context.Background()

	cases := []struct {
		name string
		in   GenerateInput
		want []int64
	}{
		{"no filter", GenerateInput{}, []int64{dog10.ID, cat10.ID, dog20.ID}},
		{"region", GenerateInput{RegionID: 10}, []int64{dog10.ID, cat10.ID}},
		{"species", GenerateInput{Species: SpeciesDog}, []int64{dog10.ID, dog20.ID}},
		{"region and species", GenerateInput{RegionID: 10, Species: SpeciesCat}, []int64{cat10.ID}},
		{"empty region", GenerateInput{RegionID: 30}, []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := svc.Generate(ctx, tc.in)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if got := ids(items); !slices.Equal(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestService_Generate_InvalidInputAndRepoError(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, GenerateInput{Species: "BIRD"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for species, got %v", err)
	}
	if _, err := svc.Generate(ctx, GenerateInput{RegionID: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for region, got %v", err)
	}

	repo.err = errors.New("db down")
	if _, err := svc.Generate(ctx, GenerateInput{}); err == nil {
		t.Fatalf("expected repo error")
	}
}

func TestService_Generate_Shuffles(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, IsPublished: true}
	for i := 0; i < 4; i++ {
		repo.add(1, "P", StatusAvailable, DogDetails{})
	}

	svc := NewService(repo)
	calls := 0
	svc.shuffle = func(n int, swap func(i, j int)) {
		calls++
		if n != 4 {
			t.Errorf("expected 4 items to shuffle, got %d", n)
		}
	}
	if _, err := svc.Generate(context.Background(), GenerateInput{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one shuffle, got %d", calls)
	}
}

func TestService_Generate_RealShuffleKeepsTheSameSet(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, IsPublished: true}
	repo.shelters[2] = ShelterSummary{ID: 2, IsPublished: false}
	want := make([]int64, 0, 20)
	for i := 0; i < 20; i++ {
		want = append(want, repo.add(1, "P", StatusAvailable, DogDetails{}).ID)
	}
	repo.add(2, "hidden", StatusAvailable, DogDetails{})

	svc := NewService(repo)
	ctx := context.Background()
	first, err := svc.Generate(ctx, GenerateInput{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := svc.Generate(ctx, GenerateInput{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if got := ids(first); !slices.Equal(got, want) {
		t.Fatalf("first call: expected %v, got %v", want, got)
	}
	if got := ids(second); !slices.Equal(got, ids(first)) {
		t.Fatalf("unchanged repo must yield the same set, got %v and %v", ids(first), got)
	}
}

func TestJudgedSet(t *testing.T) {
	got := judgedSet([]int64{3, 1, 3}, []int64{2, 1})
	if !slices.Equal(got, []int64{1, 2, 3}) {
		t.Fatalf("unexpected judged set %v", got)
	}
	if got := judgedSet(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestService_ListByIDs(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, IsPublished: true}
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := repo.add(1, "A", StatusAvailable, DogDetails{})
	b := repo.add(1, "B", StatusTakenPermanently, DogDetails{})
	pa := repo.pets[a.ID]
	pa.UpdatedAt = old
	repo.pets[a.ID] = pa
	pb := repo.pets[b.ID]
	pb.UpdatedAt = old.Add(48 * time.Hour)
	repo.pets[b.ID] = pb

	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.ListByIDs(ctx, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	items, err := svc.ListByIDs(ctx, []int64{b.ID, a.ID, a.ID}, nil)
	if err != nil || len(items) != 2 {
		t.Fatalf("expected 2 items, got %d err=%v", len(items), err)
	}
	since := old.Add(time.Hour)
	items, _ = svc.ListByIDs(ctx, []int64{a.ID, b.ID}, &since)
	if got := ids(items); !slices.Equal(got, []int64{b.ID}) {
		t.Fatalf("expected only B after since, got %v", got)
	}
}

func TestService_GetPublic_HidesUnpublishedShelter(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, IsPublished: false}
	p := repo.add(1, "A", StatusAvailable, DogDetails{})

	svc := NewService(repo)
	if _, err := svc.GetPublic(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_CreateAndUpdate(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, Name: "Lesė", IsPublished: true}
	notifier := &recordingNotifier{}
	svc := NewService(repo, WithNotifier(notifier))
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, CreateInput{Name: "Rex"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing details should fail, got %v", err)
	}

	p, err := svc.Create(ctx, 1, CreateInput{Name: " Rex ", Details: DogDetails{Size: DogSizeLarge}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Rex" || p.Status != StatusAvailable || !p.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected created pet %+v", p)
	}

	// Otra especie no se acepta.
	if _, err := svc.Update(ctx, 1, p.ID, UpdateInput{Details: CatDetails{}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for species change, got %v", err)
	}
	// Otro refugio no ve la mascota.
	if _, err := svc.Update(ctx, 2, p.ID, UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign shelter, got %v", err)
	}

	taken := StatusTakenTemporarily
	updated, err := svc.Update(ctx, 1, p.ID, UpdateInput{Status: &taken})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusTakenTemporarily {
		t.Fatalf("status not updated: %+v", updated)
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != StatusAvailable || notifier.pet[0] != "Rex" {
		t.Fatalf("expected one notification from AVAILABLE, got %+v", notifier)
	}

	name := "Reksas"
	if _, err := svc.Update(ctx, 1, p.ID, UpdateInput{Name: &name}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("rename must not notify, got %d calls", len(notifier.calls))
	}
}

func TestService_ChangeStatus(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1}
	notifier := &recordingNotifier{}
	svc := NewService(repo, WithNotifier(notifier))
	p := repo.add(1, "Murka", StatusAvailable, CatDetails{})

	if _, err := svc.ChangeStatus(context.Background(), p.ID, StatusAvailable); err != nil {
		t.Fatalf("same status: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("same status must not notify")
	}
	if _, err := svc.ChangeStatus(context.Background(), p.ID, Status(9)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	got, err := svc.ChangeStatus(context.Background(), p.ID, StatusTakenPermanently)
	if err != nil || got.Status != StatusTakenPermanently || len(notifier.calls) != 1 {
		t.Fatalf("unexpected change: %+v err=%v calls=%d", got, err, len(notifier.calls))
	}
}

func TestService_Photos(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1}
	p := repo.add(1, "Rex", StatusAvailable, DogDetails{})
	ctx := context.Background()

	bare := NewService(repo)
	if _, err := bare.SetPhoto(ctx, 1, p.ID, Upload{}); !errors.Is(err, ErrPhotosDisabled) {
		t.Fatalf("expected ErrPhotosDisabled, got %v", err)
	}

	store := &memPhotos{keys: map[string][]byte{}}
	svc := NewService(repo, WithPhotos(store))

	gif := Upload{Body: bytes.NewReader([]byte("GIF89a")), Size: 6, ContentType: "image/gif"}
	if _, err := svc.SetPhoto(ctx, 1, p.ID, gif); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for gif, got %v", err)
	}

	jpeg := Upload{Body: bytes.NewReader([]byte("jpeg")), Size: 4, ContentType: "image/jpeg"}
	got, err := svc.SetPhoto(ctx, 1, p.ID, jpeg)
	if err != nil {
		t.Fatalf("set photo: %v", err)
	}
	if got.PhotoKey == "" || string(store.keys[got.PhotoKey]) != "jpeg" {
		t.Fatalf("photo not stored, key=%q", got.PhotoKey)
	}

	png := Upload{Body: bytes.NewReader([]byte("png")), Size: 3, ContentType: "image/png"}
	got, err = svc.AddProfilePhoto(ctx, 1, p.ID, png)
	if err != nil || len(got.ProfilePhotoKeys) != 1 {
		t.Fatalf("expected one profile photo, got %+v err=%v", got.ProfilePhotoKeys, err)
	}
	if svc.PhotoURL(ctx, got.PhotoKey) != "" {
		t.Fatalf("without resolver PhotoURL must be empty")
	}
}

func TestService_ListForShelter_ValidatesFilter(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	bad := []ManagementFilter{
		{Species: "BIRD"},
		{Status: Status(9)},
		{Gender: "other"},
	}
	for _, f := range bad {
		if _, err := svc.ListForShelter(ctx, 1, f, 1); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("filter %+v: expected ErrInvalidInput, got %v", f, err)
		}
	}

	if _, err := svc.ListForShelter(ctx, 1, ManagementFilter{Query: "  rex "}, 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastFilter.Query != "rex" {
		t.Fatalf("expected trimmed query, got %q", repo.lastFilter.Query)
	}
}

func TestService_Catalog_Pages(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, Name: "Lesė", IsPublished: true}
	repo.shelters[2] = ShelterSummary{ID: 2, IsPublished: false}
	for i := 0; i < CatalogPageSize+1; i++ {
		repo.add(1, "P", StatusAvailable, DogDetails{})
	}
	repo.add(1, "taken", StatusTakenPermanently, DogDetails{})
	repo.add(2, "hidden", StatusAvailable, DogDetails{})

	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Catalog(ctx, "", 1)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(first.Items) != CatalogPageSize || !first.HasNext || first.Page != 1 {
		t.Fatalf("unexpected first page: %d items has_next=%v", len(first.Items), first.HasNext)
	}
	second, _ := svc.Catalog(ctx, "", 2)
	if len(second.Items) != 1 || second.HasNext || second.Items[0].Pet.ID != 1 {
		t.Fatalf("unexpected second page: %+v", second)
	}
	if cats, _ := svc.Catalog(ctx, SpeciesCat, 1); len(cats.Items) != 0 {
		t.Fatalf("expected no cats, got %d", len(cats.Items))
	}
	if _, err := svc.Catalog(ctx, "BIRD", 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_ShelterCatalog(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, Name: "Lesė", IsPublished: true}
	repo.shelters[2] = ShelterSummary{ID: 2, IsPublished: false}
	dog := repo.add(1, "Rex", StatusAvailable, DogDetails{})
	repo.add(1, "gone", StatusTakenOutsidePlatform, CatDetails{})
	repo.add(2, "hidden", StatusAvailable, DogDetails{})

	svc := NewService(repo)
	ctx := context.Background()

	sh, cp, err := svc.ShelterCatalog(ctx, 1, 1)
	if err != nil {
		t.Fatalf("shelter catalog: %v", err)
	}
	if sh.Name != "Lesė" || !slices.Equal(ids(cp.Items), []int64{dog.ID}) {
		t.Fatalf("unexpected shelter catalog %+v %v", sh, ids(cp.Items))
	}

	for _, id := range []int64{2, 3, 0} {
		if _, _, err := svc.ShelterCatalog(ctx, id, 1); !errors.Is(err, ErrShelterNotFound) {
			t.Fatalf("shelter %d: expected ErrShelterNotFound, got %v", id, err)
		}
	}
}

func TestService_AgeAndTeamInformation(t *testing.T) {
	repo := newTestRepo()
	repo.shelters[1] = ShelterSummary{ID: 1, IsPublished: true}
	svc := NewService(repo)
	ctx := context.Background()

	tooOld := 41
	if _, err := svc.Create(ctx, 1, CreateInput{Name: "Rex", Age: &tooOld, Details: DogDetails{}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for age, got %v", err)
	}

	age := 2
	p, err := svc.Create(ctx, 1, CreateInput{Name: "Rex", Age: &age, InformationForTeam: " bijo vaikų ", Details: DogDetails{}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Age == nil || *p.Age != 2 || p.InformationForTeam != "bijo vaikų" {
		t.Fatalf("unexpected pet %+v", p)
	}

	older := 3
	note := ""
	updated, err := svc.Update(ctx, 1, p.ID, UpdateInput{Age: &older, InformationForTeam: &note})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if *updated.Age != 3 || updated.InformationForTeam != "" {
		t.Fatalf("unexpected updated pet %+v", updated)
	}
	negative := -1
	if _, err := svc.Update(ctx, 1, p.ID, UpdateInput{Age: &negative}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative age, got %v", err)
	}
}
