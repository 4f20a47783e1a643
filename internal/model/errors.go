package model

import "errors"

var (
	// Credential related errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenNotFound = errors.New("token not found")
	ErrInvalidToken  = errors.New("invalid token")

	// Session related errors
	ErrSessionNotFound = errors.New("session not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
