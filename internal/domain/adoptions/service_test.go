package adoptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption/internal/domain/pets"
)

type testRepo struct {
	nextID  int64
	byID    map[int64]Request
	shelter map[int64]int64 // petID -> shelterID
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Request{}, shelter: map[int64]int64{}}
}

func (r *testRepo) GetOrCreate(ctx context.Context, req Request) (Request, bool, error) {
	for _, existing := range r.byID {
		if existing.UserID == req.UserID && existing.PetID == req.PetID {
			return existing, false, nil
		}
	}
	r.nextID++
	req.ID = r.nextID
	r.byID[req.ID] = req
	return req, true, nil
}

func (r *testRepo) GetEntry(ctx context.Context, id int64) (Entry, error) {
	req, ok := r.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{Request: req, ShelterID: r.shelter[req.PetID]}, nil
}

func (r *testRepo) UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error {
	req := r.byID[id]
	req.Status = status
	req.UpdatedAt = at
	r.byID[id] = req
	return nil
}

func (r *testRepo) ListByShelter(ctx context.Context, shelterID int64) ([]Entry, error) {
	var out []Entry
	for id := r.nextID; id > 0; id-- {
		if req, ok := r.byID[id]; ok && r.shelter[req.PetID] == shelterID {
			out = append(out, Entry{Request: req, ShelterID: shelterID})
		}
	}
	return out, nil
}

type petsStub struct {
	listings map[int64]pets.Listing
	changed  map[int64]pets.Status
	failOnce error
}

func (p *petsStub) GetPublic(ctx context.Context, id int64) (pets.Listing, error) {
	l, ok := p.listings[id]
	if !ok {
		return pets.Listing{}, pets.ErrNotFound
	}
	return l, nil
}

func (p *petsStub) ChangeStatus(ctx context.Context, id int64, status pets.Status) (pets.Pet, error) {
	if err := p.failOnce; err != nil {
		p.failOnce = nil
		return pets.Pet{}, err
	}
	p.changed[id] = status
	return pets.Pet{ID: id, Status: status}, nil
}

func newTestService() (*Service, *testRepo, *petsStub) {
	repo := newTestRepo()
	repo.shelter[1] = 10
	stub := &petsStub{
		listings: map[int64]pets.Listing{
			1: {Pet: pets.Pet{ID: 1}, Shelter: pets.ShelterSummary{ID: 10, Name: "Lesė", Email: "info@lese.lt"}},
		},
		changed: map[int64]pets.Status{},
	}
	return NewService(repo, stub, nil), repo, stub
}

func TestService_Submit_IsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	r1, sh, err := svc.Submit(ctx, 5, 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sh.Email != "info@lese.lt" || r1.Status != StatusUserWantsPet {
		t.Fatalf("unexpected result %+v %+v", r1, sh)
	}
	r2, _, err := svc.Submit(ctx, 5, 1)
	if err != nil || r2.ID != r1.ID || len(repo.byID) != 1 {
		t.Fatalf("second submit must reuse request, got %+v err=%v", r2, err)
	}

	if _, _, err := svc.Submit(ctx, 5, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := svc.Submit(ctx, 0, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_UpdateStatus_SyncsPet(t *testing.T) {
	cases := []struct {
		status Status
		want   pets.Status
		synced bool
	}{
		{StatusPetTakenTemporary, pets.StatusTakenTemporarily, true},
		{StatusPetReturned, pets.StatusAvailable, true},
		{StatusPetTakenPermanently, pets.StatusTakenPermanently, true},
	}
	for _, tc := range cases {
		t.Run(tc.status.String(), func(t *testing.T) {
			svc, _, stub := newTestService()
			ctx := context.Background()
			req, _, _ := svc.Submit(ctx, 5, 1)

			e, err := svc.UpdateStatus(ctx, 10, req.ID, tc.status)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if e.Status != tc.status {
				t.Fatalf("expected %s, got %s", tc.status, e.Status)
			}
			if got, ok := stub.changed[1]; ok != tc.synced || got != tc.want {
				t.Fatalf("expected pet status %s, got %s (synced=%v)", tc.want, got, ok)
			}
		})
	}
}

func TestService_UpdateStatus_PetSyncFailureCanBeRetried(t *testing.T) {
	svc, repo, stub := newTestService()
	ctx := context.Background()
	req, _, _ := svc.Submit(ctx, 5, 1)

	stub.failOnce = errors.New("db down")
	if _, err := svc.UpdateStatus(ctx, 10, req.ID, StatusPetTakenPermanently); err == nil {
		t.Fatalf("expected sync error")
	}
	if got := repo.byID[req.ID].Status; got != StatusUserWantsPet {
		t.Fatalf("request must keep its status when the pet sync fails, got %s", got)
	}

	e, err := svc.UpdateStatus(ctx, 10, req.ID, StatusPetTakenPermanently)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if e.Status != StatusPetTakenPermanently || stub.changed[1] != pets.StatusTakenPermanently {
		t.Fatalf("retry did not sync: entry=%s pet=%s", e.Status, stub.changed[1])
	}
}

func TestService_UpdateStatus_SameStatusResyncsPet(t *testing.T) {
	svc, repo, stub := newTestService()
	ctx := context.Background()
	req, _, _ := svc.Submit(ctx, 5, 1)

	// Solicitud ya guardada en PET_RETURNED sin que la mascota se sincronizara.
	stored := repo.byID[req.ID]
	stored.Status = StatusPetReturned
	repo.byID[req.ID] = stored

	if _, err := svc.UpdateStatus(ctx, 10, req.ID, StatusPetReturned); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, ok := stub.changed[1]; !ok || got != pets.StatusAvailable {
		t.Fatalf("expected pet re-synced to AVAILABLE, got %s (synced=%v)", got, ok)
	}
}

func TestService_UpdateStatus_ForeignShelterAndInvalid(t *testing.T) {
	svc, _, stub := newTestService()
	ctx := context.Background()
	req, _, _ := svc.Submit(ctx, 5, 1)

	if _, err := svc.UpdateStatus(ctx, 11, req.ID, StatusPetReturned); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign shelter, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, 10, req.ID, Status(0)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, 10, req.ID, StatusUserWantsPet); err != nil {
		t.Fatalf("same status should be a no-op: %v", err)
	}
	if len(stub.changed) != 0 {
		t.Fatalf("pet status must not change, got %v", stub.changed)
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus(" pet_returned "); err != nil || st != StatusPetReturned {
		t.Fatalf("expected PET_RETURNED, got %v err=%v", st, err)
	}
	if _, err := ParseStatus("ADOPTED"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
