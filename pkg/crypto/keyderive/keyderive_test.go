package keyderive

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	salt := []byte("rijndael-salt-01")

	for _, keySize := range []int{16, 24, 32} {
		key, err := Derive([]byte("password"), salt, MinIterations, keySize)
		require.NoError(t, err)
		assert.Len(t, key, keySize)

		again, err := Derive([]byte("password"), salt, MinIterations, keySize)
		require.NoError(t, err)
		assert.Equal(t, key, again)

		other, err := Derive([]byte("password"), []byte("another-salt-000"), MinIterations, keySize)
		require.NoError(t, err)
		assert.NotEqual(t, key, other)
	}
}

func TestDeriveKnownVector(t *testing.T) {
	key, err := Derive([]byte("password"), []byte("salt"), 4096, 32)
	require.NoError(t, err)
	assert.Equal(t, "c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a", hex.EncodeToString(key))
}

func TestDeriveErrors(t *testing.T) {
	_, err := Derive(nil, []byte("salt"), MinIterations, 16)
	assert.Error(t, err)

	_, err = Derive([]byte("pw"), []byte("salt"), MinIterations, 20)
	assert.ErrorIs(t, err, rijndael.ErrInvalidKeySize)

	_, err = Derive([]byte("pw"), []byte("salt"), 10, 16)
	assert.Error(t, err)

	_, err = Derive([]byte("pw"), []byte("salt"), MaxIterations+1, 16)
	assert.Error(t, err)
}

func TestCheckIterations(t *testing.T) {
	assert.NoError(t, CheckIterations(MinIterations))
	assert.NoError(t, CheckIterations(DefaultIterations))
	assert.NoError(t, CheckIterations(MaxIterations))
	assert.Error(t, CheckIterations(MinIterations-1))
	assert.Error(t, CheckIterations(MaxIterations+1))
	assert.Error(t, CheckIterations(-1))
}

func TestParseHexKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr error
	}{
		{"128-bit", strings.Repeat("00", 16), 16, nil},
		{"192-bit with spaces", " " + strings.Repeat("ab ", 24) + " ", 24, nil},
		{"256-bit 0x prefix", "0x" + strings.Repeat("ff", 32), 32, nil},
		{"Wrong size", strings.Repeat("00", 20), 0, rijndael.ErrInvalidKeySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseHexKey(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, tt.wantLen)
		})
	}

	_, err := ParseHexKey("zz")
	assert.Error(t, err)

	_, err = ParseHexKey("")
	assert.Error(t, err)
}

func TestParseHexIV(t *testing.T) {
	iv, err := ParseHexIV("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	assert.Equal(t, "000102030405060708090a0b0c0d0e0f", hex.EncodeToString(iv))

	_, err = ParseHexIV("0001")
	assert.ErrorIs(t, err, rijndael.ErrInvalidIVSize)
}

func TestParseHexCounter(t *testing.T) {
	c, err := ParseHexCounter("f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff")
	require.NoError(t, err)
	first := c.Next()
	assert.Equal(t, byte(0xff), first[15])

	_, err = ParseHexCounter("f0f1")
	assert.ErrorIs(t, err, rijndael.ErrInvalidBlockSize)
}

func TestParseHexNonce(t *testing.T) {
	nonce, err := ParseHexNonce("0102030405060708")
	require.NoError(t, err)
	assert.Len(t, nonce, rijndael.NonceSize)

	_, err = ParseHexNonce("01020304")
	assert.Error(t, err)
}
