// Package opaquetoken generates bearer secrets and the digests stored in their place.
package opaquetoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	// FamilyPrefix marks personal access tokens among the system's credentials.
	FamilyPrefix = "rfpa_"

	randomBytes   = 32
	displayExtra  = 8
	DisplayLength = len(FamilyPrefix) + displayExtra
)

// Token is a freshly generated credential. Raw leaves the process once and
// is never stored.
type Token struct {
	Raw    string
	Hash   string
	Prefix string
}

// Generator draws randomness from a cryptographically secure source.
type Generator struct {
	random io.Reader
}

func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

// NewGeneratorWithReader is for tests that need a deterministic source.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{random: r}
}

func (g *Generator) Generate() (Token, error) {
	buf := make([]byte, randomBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return Token{}, fmt.Errorf("opaquetoken: read random: %w", err)
	}

	raw := FamilyPrefix + base64.RawURLEncoding.EncodeToString(buf)
	return Token{
		Raw:    raw,
		Hash:   Hash(raw),
		Prefix: raw[:DisplayLength],
	}, nil
}

// Hash returns the lowercase hex SHA-256 digest of raw.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// HasFamilyPrefix reports whether raw looks like a personal access token.
func HasFamilyPrefix(raw string) bool {
	return strings.HasPrefix(raw, FamilyPrefix)
}
