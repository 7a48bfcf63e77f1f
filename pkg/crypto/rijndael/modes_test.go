package rijndael

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// expectedPadding returns the bytes EncryptCBC appends to a plaintext of length n.
func expectedPadding(n int) []byte {
	r := (BlockSize - n%BlockSize) % BlockSize
	return bytes.Repeat([]byte{byte(r)}, r)
}

func TestEncryptCBCKnownAnswers(t *testing.T) {
	tests := []struct {
		name       string
		key        []byte
		iv         []byte
		plaintext  []byte
		ciphertext string
	}{
		{
			name:       "SP 800-38A F.2.1 first block",
			key:        mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"),
			iv:         sequentialBytes(16),
			plaintext:  mustHex(t, "6bc1bee22e409f96e93d7e117393172a"),
			ciphertext: "7649abac8119b246cee98e9b12e9197d",
		},
		{
			// Block aligned input: no pad block, output stays 16 bytes.
			name:       "YELLOW SUBMARINE",
			key:        make([]byte, 16),
			iv:         make([]byte, 16),
			plaintext:  []byte("YELLOW SUBMARINE"),
			ciphertext: "9f966aceece847cd3333bb0fd5306172",
		},
		{
			name:       "Short plaintext padded with 0x0b",
			key:        make([]byte, 16),
			iv:         make([]byte, 16),
			plaintext:  []byte("hello"),
			ciphertext: "9834ed518cbc8fbe9af3c6ecb75eb8c0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := EncryptCBC(tt.plaintext, tt.key, tt.iv)
			require.NoError(t, err)
			assert.Equal(t, tt.ciphertext, hex.EncodeToString(ct))
		})
	}
}

func TestEncryptCBCNoPadBlockWhenAligned(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)

	for _, n := range []int{16, 32, 64} {
		ct, err := EncryptCBC(randomBytes(t, n), key, iv)
		require.NoError(t, err)
		assert.Len(t, ct, n, "aligned plaintext of %d bytes must not grow", n)
	}

	ct, err := EncryptCBC(nil, key, iv)
	require.NoError(t, err)
	assert.Empty(t, ct)
}

func TestEncryptCBCMatchesStdlibOnAlignedInput(t *testing.T) {
	for _, size := range []int{KeySize128, KeySize192, KeySize256} {
		key := randomBytes(t, size)
		iv := randomBytes(t, BlockSize)
		plaintext := randomBytes(t, 5*BlockSize)

		got, err := EncryptCBC(plaintext, key, iv)
		require.NoError(t, err)

		ref, err := aes.NewCipher(key)
		require.NoError(t, err)
		want := make([]byte, len(plaintext))
		cipher.NewCBCEncrypter(ref, iv).CryptBlocks(want, plaintext)

		assert.Equal(t, want, got)
	}
}

func TestCBCRoundTripKeepsPadding(t *testing.T) {
	for _, size := range []int{KeySize128, KeySize192, KeySize256} {
		for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 100} {
			key := randomBytes(t, size)
			iv := randomBytes(t, BlockSize)
			plaintext := randomBytes(t, n)

			ct, err := EncryptCBC(plaintext, key, iv)
			require.NoError(t, err)
			assert.Zero(t, len(ct)%BlockSize)

			pt, err := DecryptCBC(ct, key, iv)
			require.NoError(t, err)

			want := append(bytes.Clone(plaintext), expectedPadding(n)...)
			assert.Equal(t, want, pt, "key size %d, length %d", size, n)
		}
	}
}

func TestDecryptCBCShortFinalBlock(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)

	ct, err := EncryptCBC(bytes.Repeat([]byte("a"), 32), key, iv)
	require.NoError(t, err)

	pt, err := DecryptCBC(ct[:20], key, iv)
	require.NoError(t, err)
	assert.Len(t, pt, 20)
	assert.Equal(t, bytes.Repeat([]byte("a"), 16), pt[:16])
}

func TestCBCInvalidArguments(t *testing.T) {
	_, err := EncryptCBC([]byte("data"), make([]byte, 10), make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = EncryptCBC([]byte("data"), make([]byte, 16), make([]byte, 8))
	assert.ErrorIs(t, err, ErrInvalidIVSize)

	_, err = DecryptCBC(make([]byte, 16), make([]byte, 33), make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = DecryptCBC(make([]byte, 16), make([]byte, 32), make([]byte, 17))
	assert.ErrorIs(t, err, ErrInvalidIVSize)
}

func TestDecryptCTRKnownAnswer(t *testing.T) {
	// SP 800-38A F.5.1, first block.
	counter, err := NewCounter(mustHex(t, "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"))
	require.NoError(t, err)

	ct, err := EncryptCTR(mustHex(t, "6bc1bee22e409f96e93d7e117393172a"), mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"), counter)
	require.NoError(t, err)
	assert.Equal(t, "874d6191b620e3261bef6864990db6ce", hex.EncodeToString(ct))
}

func TestCTRSelfInverse(t *testing.T) {
	for _, size := range []int{KeySize128, KeySize192, KeySize256} {
		for _, n := range []int{0, 1, 16, 33, 250} {
			key := randomBytes(t, size)
			start := randomBytes(t, BlockSize)
			plaintext := randomBytes(t, n)

			c1, err := NewCounter(start)
			require.NoError(t, err)
			ct, err := DecryptCTR(plaintext, key, c1)
			require.NoError(t, err)
			assert.Len(t, ct, n)

			c2, err := NewCounter(start)
			require.NoError(t, err)
			pt, err := DecryptCTR(ct, key, c2)
			require.NoError(t, err)
			assert.Equal(t, plaintext, pt)
		}
	}
}

func TestCTRMatchesStdlib(t *testing.T) {
	key := randomBytes(t, KeySize256)
	// Start close to a carry into the upper half.
	start := append(randomBytes(t, 8), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe)
	data := randomBytes(t, 77)

	counter, err := NewCounter(start)
	require.NoError(t, err)
	got, err := DecryptCTR(data, key, counter)
	require.NoError(t, err)

	ref, err := aes.NewCipher(key)
	require.NoError(t, err)
	want := make([]byte, len(data))
	cipher.NewCTR(ref, start).XORKeyStream(want, data)

	assert.Equal(t, want, got)
}

func TestCTRAdvancesCounterPerBlock(t *testing.T) {
	counter, err := NewCounter(make([]byte, BlockSize))
	require.NoError(t, err)

	_, err = DecryptCTR(make([]byte, 33), make([]byte, 16), counter)
	require.NoError(t, err)

	assert.Equal(t, byte(3), counter.Value()[BlockSize-1])
}

func TestCTRBlockOffset(t *testing.T) {
	key := randomBytes(t, KeySize128)
	start := randomBytes(t, BlockSize)
	data := randomBytes(t, 4*BlockSize)

	full, err := NewCounter(start)
	require.NoError(t, err)
	whole, err := DecryptCTR(data, key, full)
	require.NoError(t, err)

	offset, err := NewCounter(start)
	require.NoError(t, err)
	offset.Add(2)
	tail, err := DecryptCTR(data[2*BlockSize:], key, offset)
	require.NoError(t, err)

	assert.Equal(t, whole[2*BlockSize:], tail)
}

func TestCTRInvalidArguments(t *testing.T) {
	counter, err := NewCounter(make([]byte, BlockSize))
	require.NoError(t, err)

	_, err = DecryptCTR([]byte("data"), make([]byte, 20), counter)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
	assert.Equal(t, [BlockSize]byte{}, counter.Value(), "counter must not move on failure")

	_, err = DecryptCTR([]byte("data"), make([]byte, 16), nil)
	assert.ErrorIs(t, err, ErrInvalidBlockSize)
}
