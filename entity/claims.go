package entity

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token issued on admin login.
type Claims struct {
	Username string `json:"username"`
	Id       string `json:"id"`
	jwt.RegisteredClaims
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Credentials) Bind(_ *http.Request) error {
	return nil
}
