package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption/internal/platform/logger"
)

const (
	ShelterCookieName = "selected_shelter_id"

	shelterCookieMaxAge = 365 * 24 * 60 * 60
)

// ShelterResolver decide el refugio activo de un usuario a partir del valor crudo de la cookie.
// ok=false => sin refugio. err solo ante fallos de base de datos.
type ShelterResolver interface {
	ResolveSelected(ctx context.Context, userID int64, cookieValue string) (shelterID int64, ok bool, err error)
}

// ShelterCookie escribe la cookie de refugio seleccionado.
type ShelterCookie struct {
	Secure bool
}

// Set reemplaza cualquier Set-Cookie previo del mismo nombre en la respuesta.
func (c ShelterCookie) Set(w http.ResponseWriter, shelterID int64) {
	c.write(w, &http.Cookie{
		Name:     ShelterCookieName,
		Value:    strconv.FormatInt(shelterID, 10),
		Path:     "/",
		MaxAge:   shelterCookieMaxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear borra la cookie en el cliente.
func (c ShelterCookie) Clear(w http.ResponseWriter) {
	c.write(w, &http.Cookie{
		Name:     ShelterCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c ShelterCookie) write(w http.ResponseWriter, cookie *http.Cookie) {
	h := w.Header()
	prefix := ShelterCookieName + "="
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	http.SetCookie(w, cookie)
}

// ShelterContext resuelve el refugio activo en cada request del panel de gestión,
// lo deja en el context y reescribe la cookie (o la borra si no hay refugio).
// Requiere AuthContext antes en la cadena.
func ShelterContext(resolver ShelterResolver, cookie ShelterCookie, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if c, err := r.Cookie(ShelterCookieName); err == nil {
				raw = c.Value
			}

			var (
				shelterID int64
				ok        bool
			)
			if id, authed := GetIdentity(r.Context()); authed {
				var err error
				shelterID, ok, err = resolver.ResolveSelected(r.Context(), id.UserID, raw)
				if err != nil {
					log.Error("resolve selected shelter failed", map[string]any{"user_id": id.UserID, "err": err})
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
			}

			if !ok {
				cookie.Clear(w)
				next.ServeHTTP(w, r)
				return
			}

			cookie.Set(w, shelterID)
			next.ServeHTTP(w, r.WithContext(WithSelectedShelter(r.Context(), shelterID)))
		})
	}
}

// RequireShelter corta con 401 si no hay usuario y 403 si no tiene refugio seleccionado.
func RequireShelter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if _, ok := SelectedShelterID(r.Context()); !ok {
			http.Error(w, "no shelter selected", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithSelectedShelter(ctx context.Context, shelterID int64) context.Context {
	return context.WithValue(ctx, shelterKey, shelterID)
}

func SelectedShelterID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(shelterKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
