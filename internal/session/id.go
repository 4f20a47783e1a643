package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const idBytes = 32

// GenerateID returns 256 bits of randomness, base64url encoded.
func GenerateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
