package postgres

import (
	"context"
	"errors"
	"fmt"

	"pet-adoption/internal/domain/users"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, first_name, social_image_url, is_superuser, date_joined`

type UsersRepo struct {
	db DBTX
}

func NewUsersRepo(db DBTX) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, social_image_url, is_superuser, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		u.Username, u.Email, u.FirstName, u.SocialImageURL, u.IsSuperuser, u.DateJoined,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return users.User{}, fmt.Errorf("username %q already exists: %w", u.Username, err)
		}
		return users.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $2, first_name = $3, social_image_url = $4, is_superuser = $5
		WHERE id = $1`,
		u.ID, u.Email, u.FirstName, u.SocialImageURL, u.IsSuperuser,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UsersRepo) getOne(ctx context.Context, query string, arg any) (users.User, error) {
	var u users.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.SocialImageURL, &u.IsSuperuser, &u.DateJoined,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UsersRepo) ListSuperusers(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE is_superuser ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list superusers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (users.User, error) {
		var u users.User
		err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.SocialImageURL, &u.IsSuperuser, &u.DateJoined)
		return u, err
	})
}
