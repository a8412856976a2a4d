package auth

// Claims representa la información extraída del token.
// Subject es el uid de Firebase; se usa como username.
type Claims struct {
	Subject    string
	Email      string
	Name       string
	PictureURL string
}

// Identity es el usuario local ya resuelto a partir de los claims.
type Identity struct {
	UserID      int64
	Username    string
	IsSuperuser bool
}
