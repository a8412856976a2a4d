package shelters

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("shelter not found")
	ErrForbidden    = errors.New("user is not staff of shelter")
)

// RegionChecker confirma que una región existe.
type RegionChecker interface {
	RegionExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo    Repository
	regions RegionChecker
	now     func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithRegions valida region_id contra el catálogo de regiones al crear o editar.
func (s *Service) WithRegions(rc RegionChecker) *Service {
	s.regions = rc
	return s
}

func (s *Service) checkRegion(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if s.regions == nil {
		return nil
	}
	ok, err := s.regions.RegionExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidInput
	}
	return nil
}

// ResolveSelected decide el refugio activo:
//  1. userID inválido o sin refugios => ninguno.
//  2. cookie con id de un refugio donde el usuario es staff => ese.
//  3. si no, el primer refugio del usuario por id.
//
// Una cookie que no parsea o apunta a un refugio ajeno se trata como ausente.
// Solo devuelve error ante fallos del repositorio.
func (s *Service) ResolveSelected(ctx context.Context, userID int64, cookieValue string) (int64, bool, error) {
	if userID <= 0 {
		return 0, false, nil
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(cookieValue), 10, 64); err == nil && id > 0 {
		staff, err := s.repo.IsStaff(ctx, id, userID)
		if err != nil {
			return 0, false, err
		}
		if staff {
			return id, true, nil
		}
	}

	list, err := s.repo.ListByStaff(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if len(list) == 0 {
		return 0, false, nil
	}
	return list[0].ID, true, nil
}

type CreateInput struct {
	Name        string
	RegionID    int64
	Email       string
	Phone       string
	IsPublished bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Shelter, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Shelter{}, ErrInvalidInput
	}
	if err := s.checkRegion(ctx, in.RegionID); err != nil {
		return Shelter{}, err
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, Shelter{
		Name:        name,
		RegionID:    in.RegionID,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		IsPublished: in.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (Shelter, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPublished es el directorio público, ordenado por nombre.
func (s *Service) ListPublished(ctx context.Context) ([]Shelter, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Shelter, 0, len(all))
	for _, sh := range all {
		if sh.IsPublished {
			out = append(out, sh)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Shelter, error) {
	return s.repo.ListByStaff(ctx, userID)
}

// Switch valida que el usuario pueda seleccionar el refugio.
func (s *Service) Switch(ctx context.Context, userID, shelterID int64) (Shelter, error) {
	staff, err := s.repo.IsStaff(ctx, shelterID, userID)
	if err != nil {
		return Shelter{}, err
	}
	if !staff {
		return Shelter{}, ErrForbidden
	}
	return s.repo.GetByID(ctx, shelterID)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name        *string
	RegionID    *int64
	Email       *string
	Phone       *string
	IsPublished *bool
}

func (s *Service) UpdateInfo(ctx context.Context, shelterID int64, in UpdateInput) (Shelter, error) {
	sh, err := s.repo.GetByID(ctx, shelterID)
	if err != nil {
		return Shelter{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Shelter{}, ErrInvalidInput
		}
		sh.Name = name
	}
	if in.RegionID != nil {
		if err := s.checkRegion(ctx, *in.RegionID); err != nil {
			return Shelter{}, err
		}
		sh.RegionID = *in.RegionID
	}
	if in.Email != nil {
		sh.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		sh.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.IsPublished != nil {
		sh.IsPublished = *in.IsPublished
	}
	sh.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) AddStaff(ctx context.Context, shelterID, userID int64) (bool, error) {
	if shelterID <= 0 || userID <= 0 {
		return false, ErrInvalidInput
	}
	if _, err := s.repo.GetByID(ctx, shelterID); err != nil {
		return false, err
	}
	return s.repo.AddStaff(ctx, shelterID, userID)
}

// ConnectSuperusers agrega cada superusuario al staff de todos los refugios.
// Devuelve cuántas asociaciones nuevas se crearon.
func (s *Service) ConnectSuperusers(ctx context.Context, superuserIDs []int64) (int, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	connected := 0
	for _, sh := range all {
		for _, uid := range superuserIDs {
			added, err := s.repo.AddStaff(ctx, sh.ID, uid)
			if err != nil {
				return connected, err
			}
			if added {
				connected++
			}
		}
	}
	return connected, nil
}
