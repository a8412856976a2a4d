package memory

import (
	"sync"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/choices"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/regions"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"
)

type choiceKey struct {
	userID int64
	petID  int64
}

// Store guarda todo en memoria detrás de un único lock, para dev y tests.
// Cada repositorio es una vista sobre el mismo Store, así los joins ven datos consistentes.
type Store struct {
	mu  sync.RWMutex
	seq map[string]int64

	countries map[int64]regions.Country
	regions   map[int64]regions.Region
	users     map[int64]users.User
	shelters  map[int64]shelters.Shelter
	staff     map[int64]map[int64]bool // shelterID -> userID
	pets      map[int64]pets.Pet
	choices   map[choiceKey]choices.Choice
	requests  map[int64]adoptions.Request
}

func NewStore() *Store {
	return &Store{
		seq:       make(map[string]int64),
		countries: make(map[int64]regions.Country),
		regions:   make(map[int64]regions.Region),
		users:     make(map[int64]users.User),
		shelters:  make(map[int64]shelters.Shelter),
		staff:     make(map[int64]map[int64]bool),
		pets:      make(map[int64]pets.Pet),
		choices:   make(map[choiceKey]choices.Choice),
		requests:  make(map[int64]adoptions.Request),
	}
}

// nextID requiere el lock de escritura.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) Regions() regions.Repository     { return regionRepo{s} }
func (s *Store) Users() users.Repository         { return userRepo{s} }
func (s *Store) Shelters() shelters.Repository   { return shelterRepo{s} }
func (s *Store) Pets() pets.Repository           { return petRepo{s} }
func (s *Store) Choices() choices.Repository     { return choiceRepo{s} }
func (s *Store) Adoptions() adoptions.Repository { return adoptionRepo{s} }
