package adoptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("request not found")
)

// PetStatusService es lo que adoptions necesita de pets.
type PetStatusService interface {
	GetPublic(ctx context.Context, id int64) (pets.Listing, error)
	ChangeStatus(ctx context.Context, id int64, status pets.Status) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetStatusService
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, petSvc PetStatusService, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{repo: repo, pets: petSvc, log: log, now: time.Now}
}

// Submit registra el interés del usuario en la mascota y devuelve el contacto del refugio.
// Repetir la llamada no crea otra solicitud.
func (s *Service) Submit(ctx context.Context, userID, petID int64) (Request, pets.ShelterSummary, error) {
	if userID <= 0 || petID <= 0 {
		return Request{}, pets.ShelterSummary{}, ErrInvalidInput
	}

	l, err := s.pets.GetPublic(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Request{}, pets.ShelterSummary{}, ErrNotFound
		}
		return Request{}, pets.ShelterSummary{}, err
	}

	now := s.now().UTC()
	req, created, err := s.repo.GetOrCreate(ctx, Request{
		UserID:    userID,
		PetID:     petID,
		Status:    StatusUserWantsPet,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Request{}, pets.ShelterSummary{}, err
	}
	if created {
		s.log.Info("adoption request created", map[string]any{
			"request_id": req.ID,
			"pet_id":     petID,
			"shelter_id": l.Shelter.ID,
		})
	}
	return req, l.Shelter, nil
}

func (s *Service) ListForShelter(ctx context.Context, shelterID int64) ([]Entry, error) {
	return s.repo.ListByShelter(ctx, shelterID)
}

// UpdateStatus sincroniza primero el estado de la mascota y después guarda el de la
// solicitud, así un fallo deja la solicitud como estaba y el mismo PATCH se puede repetir.
// Repetir el estado actual vuelve a aplicar el de la mascota.
// Solicitudes de otro refugio se ven como inexistentes.
func (s *Service) UpdateStatus(ctx context.Context, shelterID, id int64, status Status) (Entry, error) {
	if !status.Valid() {
		return Entry{}, ErrInvalidInput
	}

	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if e.ShelterID != shelterID {
		return Entry{}, ErrNotFound
	}

	if ps, ok := petStatusFor[status]; ok {
		if _, err := s.pets.ChangeStatus(ctx, e.PetID, ps); err != nil {
			return Entry{}, fmt.Errorf("sync pet status: %w", err)
		}
	}
	if e.Status == status {
		return e, nil
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return Entry{}, err
	}
	e.Status = status
	e.UpdatedAt = now
	return e, nil
}
