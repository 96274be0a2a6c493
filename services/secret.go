package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	MinSecretLen = 24
	secretChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateAPISecret returns a random alphanumeric bearer token for API_SECRET_KEY.
// Uses crypto/rand. Do not log the returned string.
func GenerateAPISecret(length int) (string, error) {
	if length < MinSecretLen {
		return "", fmt.Errorf("secret length must be >= %d", MinSecretLen)
	}
	result := make([]byte, length)
	limit := big.NewInt(int64(len(secretChars)))
	for i := range result {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate secret: %w", err)
		}
		result[i] = secretChars[n.Int64()]
	}
	return string(result), nil
}
