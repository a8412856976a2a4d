package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/domain/adoptions"

	"github.com/jackc/pgx/v5"
)

const entryQuery = `
	SELECT r.id, r.user_id, r.pet_id, r.status, r.created_at, r.updated_at,
		p.shelter_id, p.name, u.username, u.email
	FROM get_pet_requests r
	JOIN pets p ON p.id = r.pet_id
	JOIN users u ON u.id = r.user_id`

type AdoptionsRepo struct {
	db DBTX
}

func NewAdoptionsRepo(db DBTX) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) GetOrCreate(ctx context.Context, req adoptions.Request) (adoptions.Request, bool, error) {
	var status int16
	err := r.db.QueryRow(ctx, `
		INSERT INTO get_pet_requests (user_id, pet_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, pet_id) DO NOTHING
		RETURNING id`,
		req.UserID, req.PetID, int16(req.Status), req.CreatedAt, req.UpdatedAt,
	).Scan(&req.ID)
	if err == nil {
		return req, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return adoptions.Request{}, false, fmt.Errorf("create request: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT id, status, created_at, updated_at
		FROM get_pet_requests
		WHERE user_id = $1 AND pet_id = $2`,
		req.UserID, req.PetID,
	).Scan(&req.ID, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return adoptions.Request{}, false, fmt.Errorf("get request: %w", err)
	}
	req.Status = adoptions.Status(status)
	return req, false, nil
}

func scanEntry(row pgx.CollectableRow) (adoptions.Entry, error) {
	var (
		e      adoptions.Entry
		status int16
	)
	err := row.Scan(&e.ID, &e.UserID, &e.PetID, &status, &e.CreatedAt, &e.UpdatedAt,
		&e.ShelterID, &e.PetName, &e.Username, &e.UserEmail)
	e.Status = adoptions.Status(status)
	return e, err
}

func (r *AdoptionsRepo) GetEntry(ctx context.Context, id int64) (adoptions.Entry, error) {
	rows, err := r.db.Query(ctx, entryQuery+` WHERE r.id = $1`, id)
	if err != nil {
		return adoptions.Entry{}, fmt.Errorf("get request: %w", err)
	}
	e, err := pgx.CollectExactlyOneRow(rows, scanEntry)
	if errors.Is(err, pgx.ErrNoRows) {
		return adoptions.Entry{}, adoptions.ErrNotFound
	}
	return e, err
}

func (r *AdoptionsRepo) UpdateStatus(ctx context.Context, id int64, status adoptions.Status, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE get_pet_requests SET status = $2, updated_at = $3 WHERE id = $1`,
		id, int16(status), at)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

func (r *AdoptionsRepo) ListByShelter(ctx context.Context, shelterID int64) ([]adoptions.Entry, error) {
	rows, err := r.db.Query(ctx, entryQuery+` WHERE p.shelter_id = $1 ORDER BY r.id DESC`, shelterID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return pgx.CollectRows(rows, scanEntry)
}
