package models

// User holds the credential material for a local account.
// PasswordHash and Salt are opaque strings computed by the authentication
// layer; this package never hashes or verifies anything.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	Salt         string
	CreatedAt    int64 // epoch seconds
}
