package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const petColumns = `
	p.id, p.shelter_id, p.name, p.status, p.gender, p.short_description, p.description,
	p.age, p.information_for_team, p.photo_key, p.profile_photo_keys, p.species,
	COALESCE(d.size, ''), COALESCE(c.indoor_only, FALSE),
	p.created_at, p.updated_at`

const petJoins = `
	LEFT JOIN pet_dogs d ON d.pet_id = p.id
	LEFT JOIN pet_cats c ON c.pet_id = p.id`

const listingColumns = petColumns + `,
	s.id, s.name, s.email, s.phone, s.region_id, s.is_published, s.updated_at`

const listingFrom = `
	FROM pets p
	JOIN shelters s ON s.id = p.shelter_id` + petJoins

type PetsRepo struct {
	pool *pgxpool.Pool
}

func NewPetsRepo(pool *pgxpool.Pool) *PetsRepo {
	return &PetsRepo{pool: pool}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	if p.ProfilePhotoKeys == nil {
		p.ProfilePhotoKeys = []string{}
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO pets (
				shelter_id, name, status, gender, short_description, description,
				age, information_for_team, photo_key, profile_photo_keys, species, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id`,
			p.ShelterID, p.Name, int16(p.Status), string(p.Gender), p.ShortDescription, p.Description,
			p.Age, p.InformationForTeam, p.PhotoKey, p.ProfilePhotoKeys, string(p.Species()), p.CreatedAt, p.UpdatedAt,
		).Scan(&p.ID)
		if err != nil {
			return err
		}
		return saveDetails(ctx, tx, p.ID, p.Details)
	})
	if err != nil {
		return pets.Pet{}, fmt.Errorf("create pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	if p.ProfilePhotoKeys == nil {
		p.ProfilePhotoKeys = []string{}
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE pets
			SET name = $2, status = $3, gender = $4, short_description = $5, description = $6,
				age = $7, information_for_team = $8, photo_key = $9, profile_photo_keys = $10, updated_at = $11
			WHERE id = $1`,
			p.ID, p.Name, int16(p.Status), string(p.Gender), p.ShortDescription, p.Description,
			p.Age, p.InformationForTeam, p.PhotoKey, p.ProfilePhotoKeys, p.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pets.ErrNotFound
		}
		return saveDetails(ctx, tx, p.ID, p.Details)
	})
	if err != nil && !errors.Is(err, pets.ErrNotFound) {
		return fmt.Errorf("update pet: %w", err)
	}
	return err
}

// saveDetails escribe la tabla de la variante que corresponde.
func saveDetails(ctx context.Context, tx pgx.Tx, petID int64, d pets.Details) error {
	var err error
	switch v := d.(type) {
	case pets.DogDetails:
		_, err = tx.Exec(ctx, `
			INSERT INTO pet_dogs (pet_id, size) VALUES ($1, $2)
			ON CONFLICT (pet_id) DO UPDATE SET size = EXCLUDED.size`, petID, string(v.Size))
	case pets.CatDetails:
		_, err = tx.Exec(ctx, `
			INSERT INTO pet_cats (pet_id, indoor_only) VALUES ($1, $2)
			ON CONFLICT (pet_id) DO UPDATE SET indoor_only = EXCLUDED.indoor_only`, petID, v.IndoorOnly)
	default:
		err = fmt.Errorf("unsupported pet details %T", d)
	}
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+petColumns+` FROM pets p `+petJoins+` WHERE p.id = $1`, id)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (pets.Pet, error) {
		return scanPet(row)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) GetListing(ctx context.Context, id int64) (pets.Listing, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+listingColumns+listingFrom+` WHERE p.id = $1`, id)
	if err != nil {
		return pets.Listing{}, fmt.Errorf("get pet listing: %w", err)
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanListing)
	if errors.Is(err, pgx.ErrNoRows) {
		return pets.Listing{}, pets.ErrNotFound
	}
	return l, err
}

func (r *PetsRepo) GetShelterSummary(ctx context.Context, shelterID int64) (pets.ShelterSummary, error) {
	var sh pets.ShelterSummary
	err := r.pool.QueryRow(ctx, `
		SELECT s.id, s.name, s.email, s.phone, s.region_id, s.is_published, s.updated_at
		FROM shelters s WHERE s.id = $1`, shelterID,
	).Scan(&sh.ID, &sh.Name, &sh.Email, &sh.Phone, &sh.RegionID, &sh.IsPublished, &sh.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return pets.ShelterSummary{}, pets.ErrShelterNotFound
	}
	if err != nil {
		return pets.ShelterSummary{}, fmt.Errorf("get shelter summary: %w", err)
	}
	return sh, nil
}

// ListByShelter: strpos evita escapar comodines de LIKE en la búsqueda.
func (r *PetsRepo) ListByShelter(ctx context.Context, shelterID int64, f pets.ManagementFilter, offset, limit int) ([]pets.Pet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+petColumns+`
		FROM pets p `+petJoins+`
		WHERE p.shelter_id = $1
		  AND ($2::text = '' OR p.species = $2)
		  AND ($3::smallint = 0 OR p.status = $3)
		  AND ($4::text = '' OR p.gender = $4)
		  AND (NOT $5::boolean OR p.gender = '')
		  AND ($6::text = '' OR strpos(lower(p.name), lower($6)) > 0)
		ORDER BY p.id DESC
		OFFSET $7 LIMIT $8`,
		shelterID, string(f.Species), int16(f.Status), string(f.Gender), f.MissingInfo, f.Query, offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list shelter pets: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (pets.Pet, error) {
		return scanPet(row)
	})
}

func (r *PetsRepo) ListCatalog(ctx context.Context, q pets.CatalogQuery, offset, limit int) ([]pets.Listing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+listingColumns+listingFrom+`
		WHERE p.status = $1
		  AND s.is_published
		  AND ($2::bigint = 0 OR p.shelter_id = $2)
		  AND ($3::text = '' OR p.species = $3)
		ORDER BY p.id DESC
		OFFSET $4 LIMIT $5`,
		int16(pets.StatusAvailable), q.ShelterID, string(q.Species), offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return pgx.CollectRows(rows, scanListing)
}

// FindCandidates es la consulta del generador: disponibles, refugio publicado,
// no juzgadas y, opcionalmente, de una región y especie.
func (r *PetsRepo) FindCandidates(ctx context.Context, q pets.CandidateQuery) ([]pets.Listing, error) {
	exclude := q.Exclude
	if exclude == nil {
		// ANY(NULL) descartaría todas las filas.
		exclude = []int64{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+listingColumns+listingFrom+`
		WHERE p.status = $1
		  AND s.is_published
		  AND NOT (p.id = ANY($2))
		  AND ($3::bigint = 0 OR s.region_id = $3)
		  AND ($4::text = '' OR p.species = $4)`,
		int16(pets.StatusAvailable), exclude, q.RegionID, string(q.Species),
	)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	return pgx.CollectRows(rows, scanListing)
}

func (r *PetsRepo) ListByIDs(ctx context.Context, ids []int64, since *time.Time) ([]pets.Listing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+listingColumns+listingFrom+`
		WHERE p.id = ANY($1)
		  AND ($2::timestamptz IS NULL OR p.updated_at > $2 OR s.updated_at > $2)
		ORDER BY p.id`,
		ids, since,
	)
	if err != nil {
		return nil, fmt.Errorf("list pets by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanListing)
}

type scanner interface {
	Scan(dest ...any) error
}

func petDest(p *pets.Pet, status *int16, gender, species, size *string, indoor *bool) []any {
	return []any{
		&p.ID, &p.ShelterID, &p.Name, status, gender, &p.ShortDescription, &p.Description,
		&p.Age, &p.InformationForTeam, &p.PhotoKey, &p.ProfilePhotoKeys, species,
		size, indoor,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func finishPet(p *pets.Pet, status int16, gender, species, size string, indoor bool) error {
	p.Status = pets.Status(status)
	p.Gender = pets.Gender(gender)
	switch pets.Species(species) {
	case pets.SpeciesDog:
		p.Details = pets.DogDetails{Size: pets.DogSize(size)}
	case pets.SpeciesCat:
		p.Details = pets.CatDetails{IndoorOnly: indoor}
	default:
		return fmt.Errorf("pet %d: unknown species %q", p.ID, species)
	}
	if p.ProfilePhotoKeys == nil {
		p.ProfilePhotoKeys = []string{}
	}
	return nil
}

func scanPet(row scanner) (pets.Pet, error) {
	var (
		p                     pets.Pet
		status                int16
		gender, species, size string
		indoor                bool
	)
	if err := row.Scan(petDest(&p, &status, &gender, &species, &size, &indoor)...); err != nil {
		return pets.Pet{}, err
	}
	if err := finishPet(&p, status, gender, species, size, indoor); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func scanListing(row pgx.CollectableRow) (pets.Listing, error) {
	var (
		l                     pets.Listing
		status                int16
		gender, species, size string
		indoor                bool
	)
	dest := petDest(&l.Pet, &status, &gender, &species, &size, &indoor)
	dest = append(dest,
		&l.Shelter.ID, &l.Shelter.Name, &l.Shelter.Email, &l.Shelter.Phone,
		&l.Shelter.RegionID, &l.Shelter.IsPublished, &l.Shelter.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return pets.Listing{}, err
	}
	if err := finishPet(&l.Pet, status, gender, species, size, indoor); err != nil {
		return pets.Listing{}, err
	}
	return l, nil
}
