package regions

// Country agrupa regiones. Code es ISO 3166 alpha-2 en minúsculas.
type Country struct {
	ID   int64
	Name string
	Code string
}

// Region pertenece a un país. Code es único y en minúsculas.
type Region struct {
	ID        int64
	Name      string
	Code      string
	CountryID int64
}

// CountryListing es la vista pública: país + regiones + total de mascotas en sus refugios.
type CountryListing struct {
	Country   Country
	Regions   []Region
	TotalPets int
}
