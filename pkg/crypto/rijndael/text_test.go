package rijndael

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snacks = "Attack at dawn, bring snacks."

func TestDecryptTextKnownPayloads(t *testing.T) {
	tests := []struct {
		name     string
		password string
		keySize  int
		payload  string
	}{
		{"128-bit", "correct horse", 16, "AQIDBAUGBwiTf17f0mwWJS30hJNGV1hOq+jPjExd7fkWJ5smag=="},
		{"192-bit", "correct horse", 24, "AQIDBAUGBwiE5sy/o+Lr2nCTwXUmuf2JQRoWg/9kK4ZNj0QEdw=="},
		{"256-bit", "correct horse battery staple!", 32, "AQIDBAUGBwi2CXuHJ1ChGOdNHs25TNE7xLhY0Cc4GLKTNDDQ3w=="},
		{"Truncated UTF-8 password", "pässwörd-that-is-long-enough", 16, "AQIDBAUGBwgNavC6kEUvXChaOKQkj3DaJBIwJhRRJ5Daf5mhgA=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := DecryptText(tt.payload, tt.password, tt.keySize)
			require.NoError(t, err)
			assert.Equal(t, snacks, string(pt))

			again, err := EncryptText([]byte(snacks), tt.password, tt.keySize, []byte{1, 2, 3, 4, 5, 6, 7, 8})
			require.NoError(t, err)
			assert.Equal(t, tt.payload, again)
		})
	}
}

// TestDecryptTextAgainstStdlib builds a payload with crypto/aes by following the
// key derivation by hand and checks that DecryptText recovers it.
func TestDecryptTextAgainstStdlib(t *testing.T) {
	for _, keySize := range []int{KeySize128, KeySize192, KeySize256} {
		password := "hunter2"
		nonce := randomBytes(t, NonceSize)
		plaintext := randomBytes(t, 70)

		raw := make([]byte, keySize)
		copy(raw, password)
		rawCipher, err := aes.NewCipher(raw)
		require.NoError(t, err)
		block := make([]byte, BlockSize)
		rawCipher.Encrypt(block, raw[:BlockSize])

		var key []byte
		for i := 0; i < keySize/BlockSize; i++ {
			key = append(key, block...)
		}

		derived, err := TextKey(password, keySize)
		require.NoError(t, err)
		require.Equal(t, key, derived)

		ref, err := aes.NewCipher(key)
		require.NoError(t, err)
		iv := append(append([]byte(nil), nonce...), make([]byte, 8)...)
		ct := make([]byte, len(plaintext))
		cipher.NewCTR(ref, iv).XORKeyStream(ct, plaintext)

		payload := base64.StdEncoding.EncodeToString(append(append([]byte(nil), nonce...), ct...))
		got, err := DecryptText(payload, password, keySize)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestTextKeyLength(t *testing.T) {
	// 24-byte key sizes tile the block once and yield an AES-128 key.
	for keySize, want := range map[int]int{16: 16, 24: 16, 32: 32} {
		key, err := TextKey("pw", keySize)
		require.NoError(t, err)
		assert.Len(t, key, want)
	}
}

func TestDecryptTextEmptyCiphertext(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	pt, err := DecryptText(payload, "pw", 16)
	require.NoError(t, err)
	assert.Empty(t, pt)
}

func TestDecryptTextErrors(t *testing.T) {
	_, err := DecryptText("not base64!!", "pw", 16)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecryptText(base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), "pw", 16)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecryptText("AQIDBAUGBwg=", "pw", 20)
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = EncryptText([]byte("x"), "pw", 16, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidIVSize)

	_, err = EncryptText([]byte("x"), "pw", 8, make([]byte, NonceSize))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}
