package regions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/v1/regions/", listCountriesHandler(svc))
}

type regionResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type countryResponse struct {
	Name      string           `json:"name"`
	Code      string           `json:"code"`
	TotalPets int              `json:"total_pets"`
	Regions   []regionResponse `json:"regions"`
}

// listCountriesHandler godoc
// @Summary      Listar países y regiones
// @Description  Países con sus regiones y la cantidad de mascotas publicadas en cada país.
// @Tags         regions
// @Produce      json
// @Success      200  {array}   countryResponse
// @Router       /v1/regions/ [get]
func listCountriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCountries(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]countryResponse, 0, len(items))
		for _, it := range items {
			regions := make([]regionResponse, 0, len(it.Regions))
			for _, rg := range it.Regions {
				regions = append(regions, regionResponse{Name: rg.Name, Code: rg.Code})
			}
			out = append(out, countryResponse{
				Name:      it.Country.Name,
				Code:      it.Country.Code,
				TotalPets: it.TotalPets,
				Regions:   regions,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
