package adoptions

import (
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
)

type Status int

const (
	StatusUserWantsPet Status = iota + 1
	StatusPetTakenTemporary
	StatusPetReturned
	StatusPetTakenPermanently
)

var statusNames = map[Status]string{
	StatusUserWantsPet:        "USER_WANTS_PET",
	StatusPetTakenTemporary:   "PET_TAKEN_TEMPORARY",
	StatusPetReturned:         "PET_RETURNED",
	StatusPetTakenPermanently: "PET_TAKEN_PERMANENTLY",
}

// Estado de la mascota que implica cada estado de la solicitud.
var petStatusFor = map[Status]pets.Status{
	StatusPetTakenTemporary:   pets.StatusTakenTemporarily,
	StatusPetReturned:         pets.StatusAvailable,
	StatusPetTakenPermanently: pets.StatusTakenPermanently,
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

func ParseStatus(s string) (Status, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, ErrInvalidInput
}

// Request es el pedido de un usuario para adoptar una mascota. Único por (usuario, mascota).
type Request struct {
	ID        int64
	UserID    int64
	PetID     int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry es una solicitud con lo que el staff necesita para contactar.
type Entry struct {
	Request
	ShelterID int64
	PetName   string
	Username  string
	UserEmail string
}
