package postgres

import (
	"context"
	"errors"
	"fmt"

	"pet-adoption/internal/domain/regions"

	"github.com/jackc/pgx/v5"
)

type RegionsRepo struct {
	db DBTX
}

func NewRegionsRepo(db DBTX) *RegionsRepo {
	return &RegionsRepo{db: db}
}

func (r *RegionsRepo) ListCountries(ctx context.Context) ([]regions.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (regions.Country, error) {
		var c regions.Country
		err := row.Scan(&c.ID, &c.Name, &c.Code)
		return c, err
	})
}

func (r *RegionsRepo) ListRegions(ctx context.Context) ([]regions.Region, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, country_id FROM regions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return pgx.CollectRows(rows, scanRegion)
}

func (r *RegionsRepo) GetByCode(ctx context.Context, code string) (regions.Region, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, country_id FROM regions WHERE code = $1`, code)
	if err != nil {
		return regions.Region{}, fmt.Errorf("get region: %w", err)
	}
	rg, err := pgx.CollectExactlyOneRow(rows, scanRegion)
	if errors.Is(err, pgx.ErrNoRows) {
		return regions.Region{}, regions.ErrNotFound
	}
	return rg, err
}

func scanRegion(row pgx.CollectableRow) (regions.Region, error) {
	var rg regions.Region
	err := row.Scan(&rg.ID, &rg.Name, &rg.Code, &rg.CountryID)
	return rg, err
}

func (r *RegionsRepo) CountPetsByCountry(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rg.country_id, count(p.id)
		FROM pets p
		JOIN shelters s ON s.id = p.shelter_id
		JOIN regions rg ON rg.id = s.region_id
		GROUP BY rg.country_id`)
	if err != nil {
		return nil, fmt.Errorf("count pets: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int)
	for rows.Next() {
		var countryID int64
		var n int
		if err := rows.Scan(&countryID, &n); err != nil {
			return nil, err
		}
		out[countryID] = n
	}
	return out, rows.Err()
}
