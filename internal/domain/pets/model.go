package pets

import (
	"strings"
	"time"
)

// Species discrimina la variante de Details.
type Species string

const (
	SpeciesDog Species = "DOG"
	SpeciesCat Species = "CAT"
)

// ParseSpecies acepta DOG/CAT sin importar mayúsculas. "" => sin filtro.
func ParseSpecies(s string) (Species, error) {
	switch Species(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case SpeciesDog:
		return SpeciesDog, nil
	case SpeciesCat:
		return SpeciesCat, nil
	default:
		return "", ErrInvalidInput
	}
}

type Status int

const (
	StatusAvailable Status = iota + 1
	StatusTakenTemporarily
	StatusTakenPermanently
	StatusTakenOutsidePlatform
	StatusTemporarilyUnlisted
)

var statusNames = map[Status]string{
	StatusAvailable:            "AVAILABLE",
	StatusTakenTemporarily:     "TAKEN_TEMPORARILY",
	StatusTakenPermanently:     "TAKEN_PERMANENTLY",
	StatusTakenOutsidePlatform: "TAKEN_OUTSIDE_PLATFORM",
	StatusTemporarilyUnlisted:  "TEMPORARILY_UNLISTED",
}

// Etiquetas visibles para el staff (lituano, como el panel).
var statusLabels = map[Status]string{
	StatusAvailable:            "Laukia šeimininko",
	StatusTakenTemporarily:     "Laikinai paimtas per GetPet",
	StatusTakenPermanently:     "Paimtas visam laikui per GetPet",
	StatusTakenOutsidePlatform: "Paimtas ne per GetPet",
	StatusTemporarilyUnlisted:  "Laikinai nerodomas",
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

func (s Status) Label() string {
	return statusLabels[s]
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

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type DogSize string

const (
	DogSizeSmall  DogSize = "small"
	DogSizeMedium DogSize = "medium"
	DogSizeLarge  DogSize = "large"
)

// Details es la parte específica de la especie. Solo DogDetails y CatDetails la implementan.
type Details interface {
	species() Species
}

type DogDetails struct {
	Size DogSize
}

type CatDetails struct {
	IndoorOnly bool
}

func (DogDetails) species() Species { return SpeciesDog }
func (CatDetails) species() Species { return SpeciesCat }

// SpeciesOf devuelve "" si d es nil.
func SpeciesOf(d Details) Species {
	switch d.(type) {
	case DogDetails:
		return SpeciesDog
	case CatDetails:
		return SpeciesCat
	default:
		return ""
	}
}

// Pet es una mascota publicada por un refugio.
type Pet struct {
	ID        int64
	ShelterID int64

	Name             string
	Status           Status
	Gender           Gender
	ShortDescription string
	Description      string
	Age              *int // años; nil = desconocida

	// InformationForTeam solo la ve el equipo, nunca la app.
	InformationForTeam string

	PhotoKey         string
	ProfilePhotoKeys []string

	Details Details

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) Species() Species { return SpeciesOf(p.Details) }

// ShelterSummary es lo que la app necesita del refugio para contactar.
type ShelterSummary struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	RegionID    int64
	IsPublished bool
	UpdatedAt   time.Time
}

// Listing es una mascota con su refugio.
type Listing struct {
	Pet     Pet
	Shelter ShelterSummary
}

// CandidateQuery filtra mascotas recomendables: disponibles, refugio publicado,
// fuera de Exclude y, si vienen, de la región y especie pedidas.
type CandidateQuery struct {
	Exclude  []int64
	RegionID int64   // 0 = cualquier región
	Species  Species // "" = cualquier especie
}

// ManagementFilter son los filtros del listado del panel. Cero = sin filtro.
type ManagementFilter struct {
	Species Species
	Status  Status
	Gender  Gender
	// MissingInfo deja solo mascotas sin sexo cargado.
	MissingInfo bool
	// Query busca en el nombre sin distinguir mayúsculas.
	Query string
}

// Matches aplica el filtro en memoria.
func (f ManagementFilter) Matches(p Pet) bool {
	switch {
	case f.Species != "" && p.Species() != f.Species:
		return false
	case f.Status != 0 && p.Status != f.Status:
		return false
	case f.Gender != "" && p.Gender != f.Gender:
		return false
	case f.MissingInfo && p.Gender != "":
		return false
	case f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)):
		return false
	}
	return true
}

// CatalogQuery es el catálogo público: mascotas disponibles de refugios publicados.
type CatalogQuery struct {
	ShelterID int64   // 0 = todos los refugios
	Species   Species // "" = cualquier especie
}

// CatalogPage es una página del catálogo, más nuevas primero.
type CatalogPage struct {
	Items   []Listing
	Page    int
	HasNext bool
}
