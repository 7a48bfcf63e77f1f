package rijndael

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

// NonceSize is the length of the nonce that prefixes a password text payload.
const NonceSize = 8

// DecryptText decrypts a base64 payload made of an 8-byte nonce followed by CTR
// ciphertext. The key is derived from password as described on TextKey and the
// counter starts at the nonce followed by eight zero bytes.
func DecryptText(data, password string, keySize int) ([]byte, error) {
	if !ValidKeySize(keySize) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, keySize)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(raw) < NonceSize {
		return nil, fmt.Errorf("%w: payload of %d bytes is shorter than the nonce", ErrDecode, len(raw))
	}

	key, err := TextKey(password, keySize)
	if err != nil {
		return nil, err
	}

	return DecryptCTR(raw[NonceSize:], key, textCounter(raw[:NonceSize]))
}

// EncryptText is the inverse of DecryptText. nonce must be NonceSize bytes and
// must not be reused with the same password.
func EncryptText(plaintext []byte, password string, keySize int, nonce []byte) (string, error) {
	if !ValidKeySize(keySize) {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, keySize)
	}
	if len(nonce) != NonceSize {
		return "", fmt.Errorf("%w: nonce of %d bytes, want %d", ErrInvalidIVSize, len(nonce), NonceSize)
	}

	key, err := TextKey(password, keySize)
	if err != nil {
		return "", err
	}

	ciphertext, err := EncryptCTR(plaintext, key, textCounter(nonce))
	if err != nil {
		return "", err
	}

	payload := make([]byte, 0, NonceSize+len(ciphertext))
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)
	return base64.StdEncoding.EncodeToString(payload), nil
}

// TextKey derives the effective text key. The first keySize bytes of the UTF-8
// password, zero padded, form a raw key; its first 16 bytes are encrypted under
// that raw key and the resulting block is repeated keySize/16 times. A 24-byte
// key size therefore yields a 16-byte effective key.
func TextKey(password string, keySize int) ([]byte, error) {
	if !ValidKeySize(keySize) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, keySize)
	}

	raw := make([]byte, keySize)
	copy(raw, password)

	xk, err := ExpandKey(raw)
	if err != nil {
		return nil, err
	}

	var s state
	copy(s[:], raw[:BlockSize])
	encryptState(&s, xk)

	return bytes.Repeat(s[:], keySize/BlockSize), nil
}

func textCounter(nonce []byte) *Counter {
	c := &Counter{}
	copy(c.value[:NonceSize], nonce)
	return c
}
