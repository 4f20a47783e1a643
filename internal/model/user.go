package model

import "time"

// User is a preloaded credential record. Password is compared verbatim.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenClaims struct {
	UserID    int       `json:"id"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
