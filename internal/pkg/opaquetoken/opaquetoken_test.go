package opaquetoken

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	tok, err := NewGenerator().Generate()
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(tok.Raw, FamilyPrefix))
	body := strings.TrimPrefix(tok.Raw, FamilyPrefix)
	decoded, err := base64.RawURLEncoding.DecodeString(body)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	assert.Len(t, tok.Prefix, 13)
	assert.Equal(t, tok.Raw[:13], tok.Prefix)
	assert.Len(t, tok.Hash, 64)
}

func TestGenerate_HashIsIndependentlyReproducible(t *testing.T) {
	tok, err := NewGenerator().Generate()
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(tok.Raw))
	assert.Equal(t, hex.EncodeToString(sum[:]), tok.Hash)
	assert.Equal(t, tok.Hash, Hash(tok.Raw))
	assert.NotEqual(t, tok.Raw, tok.Hash)
	assert.NotContains(t, tok.Hash, strings.TrimPrefix(tok.Raw, FamilyPrefix))
}

func TestGenerate_Unique(t *testing.T) {
	g := NewGenerator()
	raws := make(map[string]struct{}, 1000)
	hashes := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		tok, err := g.Generate()
		require.NoError(t, err)
		raws[tok.Raw] = struct{}{}
		hashes[tok.Hash] = struct{}{}
	}

	assert.Len(t, raws, 1000)
	assert.Len(t, hashes, 1000)
}

func TestGenerate_DeterministicReader(t *testing.T) {
	src := bytes.Repeat([]byte{0xAB}, 32)
	tok, err := NewGeneratorWithReader(bytes.NewReader(src)).Generate()
	require.NoError(t, err)

	assert.Equal(t, FamilyPrefix+base64.RawURLEncoding.EncodeToString(src), tok.Raw)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerate_RandomFailure(t *testing.T) {
	_, err := NewGeneratorWithReader(failingReader{}).Generate()
	assert.ErrorContains(t, err, "entropy exhausted")

	_, err = NewGeneratorWithReader(bytes.NewReader([]byte{1, 2, 3})).Generate()
	assert.Error(t, err)
}

func TestHasFamilyPrefix(t *testing.T) {
	assert.True(t, HasFamilyPrefix("rfpa_abc"))
	assert.False(t, HasFamilyPrefix("eyJ1c2VySWQiOiJ1MSJ9.sig"))
	assert.False(t, HasFamilyPrefix(""))
}
