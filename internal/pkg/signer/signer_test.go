package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmptySecret(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = New("  \t")
	assert.ErrorIs(t, err, ErrMissingSecret)

	assert.Panics(t, func() { MustNew("") })
}

func TestSign_MatchesHMACSHA256(t *testing.T) {
	s, err := New("top-secret")
	require.NoError(t, err)

	msg := []byte("payload")
	mac := hmac.New(sha256.New, []byte("top-secret"))
	mac.Write(msg)

	assert.Equal(t, mac.Sum(nil), s.Sign(msg))
	assert.Len(t, s.Sign(msg), sha256.Size)
}

func TestSign_IsDeterministicPerSecret(t *testing.T) {
	a := MustNew("secret-a")
	b := MustNew("secret-b")

	msg := []byte("same message")
	assert.Equal(t, a.Sign(msg), a.Sign(msg))
	assert.NotEqual(t, a.Sign(msg), b.Sign(msg))
}

func TestVerify(t *testing.T) {
	s := MustNew("top-secret")
	msg := []byte("payload")
	sig := s.Sign(msg)

	assert.NoError(t, s.Verify(msg, sig))
	assert.ErrorIs(t, s.Verify([]byte("payloaD"), sig), ErrInvalidSignature)

	tampered := append([]byte(nil), sig...)
	tampered[0] ^= 0x01
	assert.ErrorIs(t, s.Verify(msg, tampered), ErrInvalidSignature)
	assert.ErrorIs(t, s.Verify(msg, nil), ErrInvalidSignature)
	assert.ErrorIs(t, MustNew("other").Verify(msg, sig), ErrInvalidSignature)
}
