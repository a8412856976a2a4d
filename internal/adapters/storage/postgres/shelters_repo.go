package postgres

import (
	"context"
	"errors"
	"fmt"

	"pet-adoption/internal/domain/shelters"

	"github.com/jackc/pgx/v5"
)

const shelterColumns = `s.id, s.name, s.region_id, s.email, s.phone, s.is_published, s.created_at, s.updated_at`

type SheltersRepo struct {
	db DBTX
}

func NewSheltersRepo(db DBTX) *SheltersRepo {
	return &SheltersRepo{db: db}
}

func scanShelter(row pgx.CollectableRow) (shelters.Shelter, error) {
	var s shelters.Shelter
	err := row.Scan(&s.ID, &s.Name, &s.RegionID, &s.Email, &s.Phone, &s.IsPublished, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) (shelters.Shelter, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO shelters (name, region_id, email, phone, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		s.Name, s.RegionID, s.Email, s.Phone, s.IsPublished, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return shelters.Shelter{}, fmt.Errorf("create shelter: %w", err)
	}
	return s, nil
}

func (r *SheltersRepo) GetByID(ctx context.Context, id int64) (shelters.Shelter, error) {
	rows, err := r.db.Query(ctx, `SELECT `+shelterColumns+` FROM shelters s WHERE s.id = $1`, id)
	if err != nil {
		return shelters.Shelter{}, fmt.Errorf("get shelter: %w", err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, scanShelter)
	if errors.Is(err, pgx.ErrNoRows) {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, err
}

func (r *SheltersRepo) Update(ctx context.Context, s shelters.Shelter) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE shelters
		SET name = $2, region_id = $3, email = $4, phone = $5, is_published = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Name, s.RegionID, s.Email, s.Phone, s.IsPublished, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shelter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shelters.ErrNotFound
	}
	return nil
}

func (r *SheltersRepo) ListAll(ctx context.Context) ([]shelters.Shelter, error) {
	rows, err := r.db.Query(ctx, `SELECT `+shelterColumns+` FROM shelters s ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("list shelters: %w", err)
	}
	return pgx.CollectRows(rows, scanShelter)
}

func (r *SheltersRepo) ListByStaff(ctx context.Context, userID int64) ([]shelters.Shelter, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+shelterColumns+`
		FROM shelters s
		JOIN shelter_staff st ON st.shelter_id = s.id
		WHERE st.user_id = $1
		ORDER BY s.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list staff shelters: %w", err)
	}
	return pgx.CollectRows(rows, scanShelter)
}

func (r *SheltersRepo) IsStaff(ctx context.Context, shelterID, userID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM shelter_staff WHERE shelter_id = $1 AND user_id = $2)`,
		shelterID, userID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check staff: %w", err)
	}
	return ok, nil
}

func (r *SheltersRepo) AddStaff(ctx context.Context, shelterID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO shelter_staff (shelter_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, shelterID, userID)
	if err != nil {
		return false, fmt.Errorf("add staff: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
