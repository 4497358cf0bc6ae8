// Copyright (c) 2026 Vidora. All rights reserved.

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// profileLinkAlphabet is the character set for shareable profile links.
// Lowercase plus digits keeps the links case-insensitive in URLs.
const profileLinkAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateProfileLink produces a random profile-link token of the given length.
//
// The caller (users service) is responsible for uniqueness: the token is
// random, not guaranteed collision-free, so creation re-rolls on collision.
func GenerateProfileLink(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("sec: profile link length must be positive, got %d", length)
	}

	token := make([]byte, length)
	alphabetSize := big.NewInt(int64(len(profileLinkAlphabet)))

	for i := range token {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate profile link: %w", err)
		}
		token[i] = profileLinkAlphabet[n.Int64()]
	}

	return string(token), nil
}
