package domain

import "github.com/golang-jwt/jwt/v5"

// Claims are the token claims issued by the platform's auth service. This
// service only validates them; user management lives outside.
type Claims struct {
	UserID    string
	UserEmail string
	jwt.RegisteredClaims
}
