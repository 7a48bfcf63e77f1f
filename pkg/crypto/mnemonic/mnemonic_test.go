package mnemonic

import (
	"encoding/hex"
	"testing"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

func TestNewForKeySize(t *testing.T) {
	tests := []struct {
		name      string
		keySize   int
		wantWords int
		wantError bool
	}{
		{"AES-128 (12 words)", 16, 12, false},
		{"AES-192 (18 words)", 24, 18, false},
		{"AES-256 (24 words)", 32, 24, false},
		{"Invalid: 20 bytes", 20, 0, true},
		{"Invalid: 8 bytes", 8, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewForKeySize(tt.keySize)
			if tt.wantError {
				assert.ErrorIs(t, err, rijndael.ErrInvalidKeySize)
				assert.Nil(t, m)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, m.WordCount())
			assert.True(t, bip39.IsMnemonicValid(m.Words()))

			key, err := m.Key()
			require.NoError(t, err)
			assert.Len(t, key, tt.keySize)
		})
	}
}

func TestFromKeyKnownVector(t *testing.T) {
	// BIP-39 reference vector for 16 zero bytes.
	key := make([]byte, 16)
	m, err := FromKey(key)
	require.NoError(t, err)
	assert.Equal(t,
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		m.Words())

	back, err := m.Key()
	require.NoError(t, err)
	assert.Equal(t, key, back)
}

func TestFromWordsRoundTrip(t *testing.T) {
	key, err := hex.DecodeString("7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f")
	require.NoError(t, err)

	m, err := FromKey(key)
	require.NoError(t, err)

	parsed, err := FromWords("  " + m.Words() + "\n")
	require.NoError(t, err)
	assert.Equal(t, m.WordList(), parsed.WordList())

	back, err := parsed.Key()
	require.NoError(t, err)
	assert.Equal(t, key, back)
}

func TestFromWordsRejects(t *testing.T) {
	_, err := FromWords("abandon abandon abandon")
	assert.Error(t, err)

	// Valid BIP-39 checksum, but 15 words is 160 bits, not an AES key size.
	m15, err := bip39.NewMnemonic(make([]byte, 20))
	require.NoError(t, err)
	_, err = FromWords(m15)
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	m, err := FromKey(make([]byte, 32))
	require.NoError(t, err)

	fp, err := m.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fp, 8)

	again, err := m.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, again)
}

func TestKeySizeFromWordCount(t *testing.T) {
	for words, want := range map[int]int{12: 16, 18: 24, 24: 32} {
		got, err := KeySizeFromWordCount(words)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, words := range []int{0, 15, 21, 25} {
		_, err := KeySizeFromWordCount(words)
		assert.Error(t, err)
	}
}
