package keyshare

import (
	"bytes"
	"testing"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAndCombine(t *testing.T) {
	tests := []struct {
		name      string
		key       []byte
		parts     int
		threshold int
	}{
		{
			name:      "AES-128 2 of 3",
			key:       bytes.Repeat([]byte{0x42}, 16),
			parts:     3,
			threshold: 2,
		},
		{
			name:      "AES-192 3 of 5",
			key:       bytes.Repeat([]byte{0x07}, 24),
			parts:     5,
			threshold: 3,
		},
		{
			name:      "AES-256 5 of 7",
			key:       []byte("0123456789abcdef0123456789abcdef"),
			parts:     7,
			threshold: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Split(tt.key, Config{Parts: tt.parts, Threshold: tt.threshold})
			require.NoError(t, err)
			require.Len(t, shares, tt.parts)

			seen := map[byte]bool{}
			for _, s := range shares {
				assert.Len(t, s, len(tt.key)+1)
				assert.NotZero(t, s.Index())
				assert.False(t, seen[s.Index()], "indexes must be distinct")
				seen[s.Index()] = true
			}

			key, err := Combine(shares[:tt.threshold])
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)

			key, err = Combine(shares[tt.parts-tt.threshold:])
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestSplitRejectsInvalidInput(t *testing.T) {
	_, err := Split(make([]byte, 20), Config{Parts: 3, Threshold: 2})
	assert.ErrorIs(t, err, rijndael.ErrInvalidKeySize)

	for _, cfg := range []Config{
		{Parts: 1, Threshold: 1},
		{Parts: 3, Threshold: 1},
		{Parts: 3, Threshold: 4},
		{Parts: 256, Threshold: 3},
	} {
		_, err := Split(make([]byte, 16), cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestCombineRejectsBadShares(t *testing.T) {
	shares, err := Split(make([]byte, 16), Config{Parts: 3, Threshold: 2})
	require.NoError(t, err)

	_, err = Combine(shares[:1])
	assert.Error(t, err)

	_, err = Combine([]Share{shares[0], shares[0]})
	assert.Error(t, err, "duplicate shares")

	other, err := Split(make([]byte, 32), Config{Parts: 2, Threshold: 2})
	require.NoError(t, err)
	_, err = Combine([]Share{shares[0], other[0]})
	assert.Error(t, err, "mixed key sizes")
}

func TestParseShares(t *testing.T) {
	key := []byte("YELLOW SUBMARINE")
	shares, err := Split(key, Config{Parts: 3, Threshold: 2})
	require.NoError(t, err)

	parsed, err := ParseShares([]string{" " + shares[2].String() + "\n", "", "0x" + shares[0].String()})
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, shares[2], parsed[0])

	recovered, err := Combine(parsed)
	require.NoError(t, err)
	assert.Equal(t, key, recovered)

	_, err = ParseShare("zz")
	assert.Error(t, err)

	_, err = ParseShare("00112233")
	assert.Error(t, err, "too short for a key")

	_, err = ParseShare(shares[0].String()[:32] + "00")
	assert.Error(t, err, "zero index")
}
