package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

var (
	ErrNotConfigured = errors.New("firebase client not configured")
	ErrUnauthorized  = errors.New("firebase unauthorized")
	ErrUpstream      = errors.New("firebase upstream error")
)

// Profile son los datos de la cuenta que Firebase devuelve en accounts:lookup.
type Profile struct {
	Email      string
	Name       string
	PictureURL string
}

// Client consulta la API de Identity Toolkit. Se construye una vez al arrancar.
type Client struct {
	apiKey string
	http   *httpclient.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = identityToolkitURL
	}
	hc, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{apiKey: strings.TrimSpace(apiKey), http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// Lookup devuelve el perfil asociado a un ID token.
func (c *Client) Lookup(ctx context.Context, idToken string) (Profile, error) {
	if !c.IsConfigured() {
		return Profile{}, ErrNotConfigured
	}

	var out struct {
		Users []struct {
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
			PhotoURL    string `json:"photoUrl"`
		} `json:"users"`
	}
	path := "/accounts:lookup?key=" + url.QueryEscape(c.apiKey)
	err := c.http.DoJSON(ctx, http.MethodPost, path, nil, map[string]string{"idToken": idToken}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusBadRequest {
			return Profile{}, ErrUnauthorized
		}
		return Profile{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(out.Users) == 0 {
		return Profile{}, ErrUnauthorized
	}

	u := out.Users[0]
	return Profile{
		Email:      strings.TrimSpace(u.Email),
		Name:       strings.TrimSpace(u.DisplayName),
		PictureURL: strings.TrimSpace(u.PhotoURL),
	}, nil
}
