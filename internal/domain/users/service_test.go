package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"pet-adoption/internal/ports/auth"
)

type testRepo struct {
	nextID  int64
	byID    map[int64]User
	updates int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) (User, error) {
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return u, nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	r.updates++
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) ListSuperusers(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range r.byID {
		if u.IsSuperuser {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestService_ResolveIdentity_DummyEmailWhenMissing(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	id, err := svc.ResolveIdentity(context.Background(), auth.Claims{Subject: "uid-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	u := repo.byID[id.UserID]
	if u.Email != "uid-1@dummy-getpet.lt" {
		t.Fatalf("expected dummy email, got %q", u.Email)
	}
	if !u.DateJoined.Equal(fixed) {
		t.Fatalf("unexpected date joined: %s", u.DateJoined)
	}
}

func TestService_ResolveIdentity_UpdatesOnlyOnChange(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	claims := auth.Claims{Subject: "uid-2", Email: " Jonas@Example.LT ", Name: "Jonas"}
	first, err := svc.ResolveIdentity(ctx, claims)
	if err != nil {
		t.Fatalf("resolve #1: %v", err)
	}
	second, err := svc.ResolveIdentity(ctx, claims)
	if err != nil {
		t.Fatalf("resolve #2: %v", err)
	}
	if first.UserID != second.UserID {
		t.Fatalf("same uid must map to same user: %d vs %d", first.UserID, second.UserID)
	}
	if repo.updates != 0 {
		t.Fatalf("unchanged claims should not write, got %d updates", repo.updates)
	}
	if repo.byID[first.UserID].Email != "jonas@example.lt" {
		t.Fatalf("email should be normalized, got %q", repo.byID[first.UserID].Email)
	}

	claims.PictureURL = "https://img/jonas.png"
	if _, err := svc.ResolveIdentity(ctx, claims); err != nil {
		t.Fatalf("resolve #3: %v", err)
	}
	if repo.updates != 1 || repo.byID[first.UserID].SocialImageURL != "https://img/jonas.png" {
		t.Fatalf("expected one update with picture, got updates=%d user=%+v", repo.updates, repo.byID[first.UserID])
	}
}

func TestService_ResolveIdentity_RequiresSubject(t *testing.T) {
	svc := NewService(newTestRepo())
	if _, err := svc.ResolveIdentity(context.Background(), auth.Claims{Email: "a@b.lt"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUser_ImageURL_FallsBackToGravatar(t *testing.T) {
	u := User{Email: "a@b.lt"}
	if !strings.HasPrefix(u.ImageURL(), "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected gravatar url: %s", u.ImageURL())
	}
	u.SocialImageURL = "https://social/img.png"
	if u.ImageURL() != "https://social/img.png" {
		t.Fatalf("social image should win, got %s", u.ImageURL())
	}
}

func TestService_SetSuperuser(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()
	_, _ = svc.Upsert(ctx, auth.Claims{Subject: "uid-1", Email: "a@b.lt"})

	u, err := svc.SetSuperuser(ctx, " uid-1 ", true)
	if err != nil || !u.IsSuperuser {
		t.Fatalf("expected superuser, got %+v err=%v", u, err)
	}
	if _, err := svc.SetSuperuser(ctx, "uid-1", true); err != nil || repo.updates != 1 {
		t.Fatalf("repeat must not write, updates=%d err=%v", repo.updates, err)
	}
	list, _ := svc.ListSuperusers(ctx)
	if len(list) != 1 {
		t.Fatalf("expected one superuser, got %d", len(list))
	}
	if _, err := svc.SetSuperuser(ctx, "nope", true); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
