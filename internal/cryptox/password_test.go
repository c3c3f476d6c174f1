package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheap parameters keep the suite fast
var testParams = Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHash_Format(t *testing.T) {
	h := NewPasswordHasher(testParams)

	encoded, err := h.Hash("hunter2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"), encoded)
	assert.Len(t, strings.Split(encoded, "$"), 6)
	assert.NotContains(t, encoded, "hunter2")
}

func TestHash_UniqueSalts(t *testing.T) {
	h := NewPasswordHasher(testParams)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerify_Argon2id(t *testing.T) {
	h := NewPasswordHasher(testParams)
	encoded, err := h.Hash("correct horse")
	require.NoError(t, err)

	ok, err := h.Verify("correct horse", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("battery staple", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UsesParamsFromHash(t *testing.T) {
	encoded, err := NewPasswordHasher(testParams).Hash("pw")
	require.NoError(t, err)

	other := NewPasswordHasher(Argon2Params{Memory: 2048, Iterations: 3, Parallelism: 2, SaltLength: 8, KeyLength: 16})
	ok, err := other.Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_Bcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewPasswordHasher(testParams)

	ok, err := h.Verify("legacy", string(raw))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", string(raw))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_Errors(t *testing.T) {
	h := NewPasswordHasher(testParams)

	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{name: "unknown scheme", encoded: "plaintext", wantErr: ErrUnsupportedHash},
		{name: "too few parts", encoded: "$argon2id$v=19$m=1,t=1,p=1$abc", wantErr: ErrMalformedHash},
		{name: "bad version", encoded: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", wantErr: ErrUnsupportedHash},
		{name: "bad params", encoded: "$argon2id$v=19$x$c2FsdA$a2V5", wantErr: ErrMalformedHash},
		{name: "bad salt", encoded: "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5", wantErr: ErrMalformedHash},
		{name: "empty key", encoded: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$", wantErr: ErrMalformedHash},
		{name: "truncated bcrypt", encoded: "$2a$04$short", wantErr: ErrMalformedHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("pw", tt.encoded)
			assert.False(t, ok)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
