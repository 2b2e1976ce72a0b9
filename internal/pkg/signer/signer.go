// Package signer produces and checks HMAC-SHA256 signatures with a
// server-held secret.
package signer

import (
	"errors"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret    = errors.New("signer: secret must not be empty")
	ErrInvalidSignature = errors.New("signer: invalid signature")
)

// Signer is safe for concurrent use. The secret is copied at construction
// and never changes afterwards.
type Signer struct {
	key []byte
}

func New(secret string) (*Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{key: []byte(secret)}, nil
}

// MustNew is New for startup paths, where a missing secret is fatal.
func MustNew(secret string) *Signer {
	s, err := New(secret)
	if err != nil {
		panic(err)
	}
	return s
}

// Sign returns the raw 32-byte HMAC-SHA256 of message.
func (s *Signer) Sign(message []byte) []byte {
	sig, err := jwtlib.SigningMethodHS256.Sign(string(message), s.key)
	if err != nil {
		// Only reachable with a non-[]byte or empty key, which New rules out.
		panic(err)
	}
	return sig
}

// Verify checks sig against message in constant time.
func (s *Signer) Verify(message, sig []byte) error {
	if err := jwtlib.SigningMethodHS256.Verify(string(message), sig, s.key); err != nil {
		return ErrInvalidSignature
	}
	return nil
}
