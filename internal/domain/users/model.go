package users

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
)

// User es el usuario local. Username es el uid de Firebase.
type User struct {
	ID             int64
	Username       string
	Email          string
	FirstName      string
	SocialImageURL string
	IsSuperuser    bool
	DateJoined     time.Time
}

// ImageURL devuelve la foto de la red social o, si no hay, el gravatar del email.
func (u User) ImageURL() string {
	if u.SocialImageURL != "" {
		return u.SocialImageURL
	}
	sum := md5.Sum([]byte(strings.ToLower(u.Email)))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=128&d=identicon"
}
