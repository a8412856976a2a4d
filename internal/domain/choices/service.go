package choices

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

// PetLookup confirma que la mascota existe.
type PetLookup interface {
	GetByID(ctx context.Context, id int64) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetLookup
	now  func() time.Time
}

func NewService(repo Repository, petLookup PetLookup) *Service {
	return &Service{repo: repo, pets: petLookup, now: time.Now}
}

// Choose registra (o reemplaza) la decisión del usuario.
func (s *Service) Choose(ctx context.Context, userID, petID int64, favorite bool) (Choice, error) {
	if userID <= 0 || petID <= 0 {
		return Choice{}, ErrInvalidInput
	}
	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Choice{}, ErrNotFound
		}
		return Choice{}, err
	}

	now := s.now().UTC()
	c, err := s.repo.Upsert(ctx, Choice{
		UserID:     userID,
		PetID:      petID,
		IsFavorite: favorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return Choice{}, err
	}
	metrics.ChoicesTotal.WithLabelValues(strconv.FormatBool(favorite)).Inc()
	return c, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Choice, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// JudgedPetIDs separa las decisiones del usuario en favoritas y descartadas.
func (s *Service) JudgedPetIDs(ctx context.Context, userID int64) (liked, disliked []int64, err error) {
	list, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range list {
		if c.IsFavorite {
			liked = append(liked, c.PetID)
		} else {
			disliked = append(disliked, c.PetID)
		}
	}
	return liked, disliked, nil
}

var exportHeader = []string{
	"pet_id",
	"pet_created_at",
	"user_id",
	"user_joined_date",
	"is_pet_favorited",
	"user_choice_created_at",
	"user_choice_updated_at",
}

// ExportDogChoices escribe en CSV todas las decisiones sobre perros.
func (s *Service) ExportDogChoices(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.repo.ListDogChoiceRows(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatInt(r.PetID, 10),
			r.PetCreatedAt.UTC().Format(time.RFC3339),
			strconv.FormatInt(r.UserID, 10),
			r.UserJoinedAt.UTC().Format(time.RFC3339),
			strconv.FormatBool(r.IsFavorite),
			r.ChoiceCreatedAt.UTC().Format(time.RFC3339),
			r.ChoiceUpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}
