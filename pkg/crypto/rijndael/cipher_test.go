package rijndael

import (
	"crypto/cipher"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCipherWithStdlibCBC(t *testing.T) {
	key := randomBytes(t, KeySize192)
	iv := randomBytes(t, BlockSize)
	plaintext := randomBytes(t, 4*BlockSize)

	block, err := NewCipher(key)
	require.NoError(t, err)
	assert.Equal(t, BlockSize, block.BlockSize())

	viaStdlib := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(viaStdlib, plaintext)

	direct, err := EncryptCBC(plaintext, key, iv)
	require.NoError(t, err)
	assert.Equal(t, direct, viaStdlib)

	back := make([]byte, len(plaintext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(back, viaStdlib)
	assert.Equal(t, plaintext, back)
}

func TestNewCipherInvalidKey(t *testing.T) {
	block, err := NewCipher(make([]byte, 7))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
	assert.Nil(t, block)
}

func TestCipherPanicsOnShortBlock(t *testing.T) {
	block, err := NewCipher(make([]byte, 16))
	require.NoError(t, err)

	assert.Panics(t, func() { block.Encrypt(make([]byte, 16), make([]byte, 8)) })
	assert.Panics(t, func() { block.Decrypt(make([]byte, 8), make([]byte, 16)) })
}
