package router

import (
	"pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/choices"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/regions"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos agrupa los repositorios de todos los módulos.
type Repos struct {
	Regions   regions.Repository
	Users     users.Repository
	Shelters  shelters.Repository
	Pets      pets.Repository
	Choices   choices.Repository
	Adoptions adoptions.Repository
}

func MemoryRepos(s *memory.Store) *Repos {
	return &Repos{
		Regions:   s.Regions(),
		Users:     s.Users(),
		Shelters:  s.Shelters(),
		Pets:      s.Pets(),
		Choices:   s.Choices(),
		Adoptions: s.Adoptions(),
	}
}

func PostgresRepos(pool *pgxpool.Pool) *Repos {
	return &Repos{
		Regions:   pg.NewRegionsRepo(pool),
		Users:     pg.NewUsersRepo(pool),
		Shelters:  pg.NewSheltersRepo(pool),
		Pets:      pg.NewPetsRepo(pool),
		Choices:   pg.NewChoicesRepo(pool),
		Adoptions: pg.NewAdoptionsRepo(pool),
	}
}
