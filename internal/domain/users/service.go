package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

// DummyEmailDomain completa el email cuando Firebase no lo devuelve.
const DummyEmailDomain = "dummy-getpet.lt"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// ResolveIdentity hace update-or-create por username (uid) y devuelve la identidad local.
func (s *Service) ResolveIdentity(ctx context.Context, claims auth.Claims) (auth.Identity, error) {
	u, err := s.Upsert(ctx, claims)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{UserID: u.ID, Username: u.Username, IsSuperuser: u.IsSuperuser}, nil
}

func (s *Service) Upsert(ctx context.Context, claims auth.Claims) (User, error) {
	uid := strings.TrimSpace(claims.Subject)
	if uid == "" {
		return User{}, ErrInvalidInput
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		email = uid + "@" + DummyEmailDomain
	}
	want := User{
		Username:       uid,
		Email:          email,
		FirstName:      strings.TrimSpace(claims.Name),
		SocialImageURL: strings.TrimSpace(claims.PictureURL),
	}

	current, err := s.repo.GetByUsername(ctx, uid)
	if errors.Is(err, ErrNotFound) {
		want.DateJoined = s.now().UTC()
		return s.repo.Create(ctx, want)
	}
	if err != nil {
		return User{}, err
	}

	// Sin cambios => no escribimos (se llama en cada request autenticado).
	if current.Email == want.Email && current.FirstName == want.FirstName && current.SocialImageURL == want.SocialImageURL {
		return current, nil
	}

	current.Email = want.Email
	current.FirstName = want.FirstName
	current.SocialImageURL = want.SocialImageURL
	if err := s.repo.Update(ctx, current); err != nil {
		return User{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *Service) ListSuperusers(ctx context.Context) ([]User, error) {
	return s.repo.ListSuperusers(ctx)
}

// SetSuperuser marca o desmarca al usuario como superusuario (uso administrativo).
func (s *Service) SetSuperuser(ctx context.Context, username string, superuser bool) (User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return User{}, err
	}
	if u.IsSuperuser == superuser {
		return u, nil
	}
	u.IsSuperuser = superuser
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}
