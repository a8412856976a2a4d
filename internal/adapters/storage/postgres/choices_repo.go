package postgres

import (
	"context"
	"fmt"

	"pet-adoption/internal/domain/choices"

	"github.com/jackc/pgx/v5"
)

type ChoicesRepo struct {
	db DBTX
}

func NewChoicesRepo(db DBTX) *ChoicesRepo {
	return &ChoicesRepo{db: db}
}

func (r *ChoicesRepo) Upsert(ctx context.Context, c choices.Choice) (choices.Choice, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_pet_choices (user_id, pet_id, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, pet_id)
		DO UPDATE SET is_favorite = EXCLUDED.is_favorite, updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`,
		c.UserID, c.PetID, c.IsFavorite, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return choices.Choice{}, fmt.Errorf("upsert choice: %w", err)
	}
	return c, nil
}

func (r *ChoicesRepo) ListByUser(ctx context.Context, userID int64) ([]choices.Choice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, pet_id, is_favorite, created_at, updated_at
		FROM user_pet_choices
		WHERE user_id = $1
		ORDER BY pet_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list choices: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (choices.Choice, error) {
		var c choices.Choice
		err := row.Scan(&c.UserID, &c.PetID, &c.IsFavorite, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
}

func (r *ChoicesRepo) ListDogChoiceRows(ctx context.Context) ([]choices.ExportRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.created_at, u.id, u.date_joined, c.is_favorite, c.created_at, c.updated_at
		FROM user_pet_choices c
		JOIN pets p ON p.id = c.pet_id
		JOIN users u ON u.id = c.user_id
		WHERE p.species = 'DOG'
		ORDER BY c.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list dog choices: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (choices.ExportRow, error) {
		var e choices.ExportRow
		err := row.Scan(&e.PetID, &e.PetCreatedAt, &e.UserID, &e.UserJoinedAt, &e.IsFavorite, &e.ChoiceCreatedAt, &e.ChoiceUpdatedAt)
		return e, err
	})
}
