package credential

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PlainHasher stores secrets verbatim. It matches the historical flat-file
// format and offers no protection for stored secrets.
type PlainHasher struct{}

func (PlainHasher) Hash(secret string) (string, error) {
	return secret, nil
}

func (PlainHasher) Compare(stored, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1
}

// BcryptHasher stores bcrypt digests.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hashing secret: %w", err)
	}
	return string(digest), nil
}

func (BcryptHasher) Compare(stored, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}

// HasherFor returns the hasher registered under name ("plain" or "bcrypt").
func HasherFor(name string) (SecretHasher, error) {
	switch name {
	case "", "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		return BcryptHasher{}, nil
	}
	return nil, errors.New("unknown secret hashing scheme: " + name)
}
