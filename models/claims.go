package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT payload issued at login. Email is the principal; every
// service call resolves the acting user from it.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}
