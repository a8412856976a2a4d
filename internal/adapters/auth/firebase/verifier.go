package firebase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const issuerPrefix = "https://securetoken.google.com/"

type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// Verifier valida ID tokens de Firebase (RS256, claves públicas de Google vía JWKS).
type Verifier struct {
	jwks      keyfunc.Keyfunc
	projectID string
	lookup    *Client
	log       logger.Logger
	leeway    time.Duration
}

type Config struct {
	ProjectID string
	APIKey    string
	JWKSURL   string
	Timeout   time.Duration
}

// New descarga el JWKS y lo refresca en segundo plano mientras ctx viva.
func New(ctx context.Context, cfg Config, log logger.Logger) (*Verifier, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, ErrNotConfigured
	}
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("firebase jwks: %w", err)
	}

	var lookup *Client
	if cfg.APIKey != "" {
		if lookup, err = NewClient(cfg.APIKey, "", cfg.Timeout); err != nil {
			return nil, err
		}
	}
	return NewWithKeyfunc(kf, cfg.ProjectID, lookup, log), nil
}

// NewWithKeyfunc permite inyectar las claves (tests).
func NewWithKeyfunc(kf keyfunc.Keyfunc, projectID string, lookup *Client, log logger.Logger) *Verifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Verifier{
		jwks:      kf,
		projectID: projectID,
		lookup:    lookup,
		log:       log,
		leeway:    30 * time.Second,
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	claims := &idTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.jwks.KeyfuncCtx(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", auth.ErrInvalidToken)
	}

	out := auth.Claims{
		Subject:    claims.Subject,
		Email:      strings.TrimSpace(claims.Email),
		Name:       strings.TrimSpace(claims.Name),
		PictureURL: strings.TrimSpace(claims.Picture),
	}

	// Algunos proveedores (teléfono, anónimo) no traen email en el token.
	if out.Email == "" && v.lookup.IsConfigured() {
		p, err := v.lookup.Lookup(ctx, token)
		if err != nil {
			v.log.Warn("firebase profile lookup failed", map[string]any{"subject": out.Subject, "err": err})
			return out, nil
		}
		out.Email = p.Email
		if out.Name == "" {
			out.Name = p.Name
		}
		if out.PictureURL == "" {
			out.PictureURL = p.PictureURL
		}
	}
	return out, nil
}
