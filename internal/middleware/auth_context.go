package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
)

type ctxKey string

const (
	identityKey ctxKey = "identity"
	shelterKey  ctxKey = "selected_shelter"
)

// DebugUserHeader solo se acepta en modo dev (sin verifiers).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext resuelve la identidad del request:
//   - Sin verifiers => modo dev: X-Debug-User-ID es el uid del usuario.
//   - Con verifiers => token Bearer (o query param Authorization, como la app móvil);
//     gana el primer verifier que lo acepte.
//
// Sin token válido el request sigue anónimo; los handlers deciden 401/403.
// Un fallo al resolver el usuario local es error de base de datos => 500.
func AuthContext(resolver auth.IdentityResolver, log logger.Logger, verifiers ...auth.AuthVerifier) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromRequest(r, verifiers, log)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolver.ResolveIdentity(r.Context(), claims)
			if err != nil {
				log.Error("resolve identity failed", map[string]any{"subject": claims.Subject, "err": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func claimsFromRequest(r *http.Request, verifiers []auth.AuthVerifier, log logger.Logger) (auth.Claims, bool) {
	if len(verifiers) == 0 {
		uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{Subject: uid}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = strings.TrimSpace(r.URL.Query().Get("Authorization"))
	}
	if token == "" {
		return auth.Claims{}, false
	}

	for _, v := range verifiers {
		claims, err := v.Verify(r.Context(), token)
		if err == nil {
			return claims, true
		}
		log.Debug("token rejected", map[string]any{"err": err})
	}
	return auth.Claims{}, false
}

func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	noteLoggedUser(ctx, id.UserID)
	return context.WithValue(ctx, identityKey, id)
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	if !ok || id.UserID <= 0 {
		return auth.Identity{}, false
	}
	return id, true
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
