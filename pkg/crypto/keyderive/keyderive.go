// Package keyderive turns user supplied material (passwords, hex strings) into
// keys, IVs and counters for the rijndael package.
package keyderive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 100000
	MinIterations     = 1000
	MaxIterations     = 100 * DefaultIterations
	SaltSize          = 16
)

// Derive stretches password into a keySize byte AES key with
// PBKDF2-HMAC-SHA256.
func Derive(password, salt []byte, iterations, keySize int) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}
	if !rijndael.ValidKeySize(keySize) {
		return nil, fmt.Errorf("%w: %d bytes", rijndael.ErrInvalidKeySize, keySize)
	}
	if err := CheckIterations(iterations); err != nil {
		return nil, err
	}

	return pbkdf2.Key(password, salt, iterations, keySize, sha256.New), nil
}

// CheckIterations rejects PBKDF2 iteration counts outside
// [MinIterations, MaxIterations].
func CheckIterations(iterations int) error {
	if iterations < MinIterations || iterations > MaxIterations {
		return fmt.Errorf("iterations must be between %d and %d (got %d)", MinIterations, MaxIterations, iterations)
	}
	return nil
}

// ParseHexKey decodes a 32, 48 or 64 character hex key.
func ParseHexKey(s string) ([]byte, error) {
	key, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	if !rijndael.ValidKeySize(len(key)) {
		return nil, fmt.Errorf("%w: %d bytes", rijndael.ErrInvalidKeySize, len(key))
	}
	return key, nil
}

// ParseHexIV decodes a 16-byte hex IV.
func ParseHexIV(s string) ([]byte, error) {
	iv, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid IV: %w", err)
	}
	if len(iv) != rijndael.BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", rijndael.ErrInvalidIVSize, len(iv))
	}
	return iv, nil
}

// ParseHexCounter decodes a 16-byte hex counter block.
func ParseHexCounter(s string) (*rijndael.Counter, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid counter: %w", err)
	}
	return rijndael.NewCounter(b)
}

// ParseHexNonce decodes an 8-byte hex nonce for the password text format.
func ParseHexNonce(s string) ([]byte, error) {
	nonce, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid nonce: %w", err)
	}
	if len(nonce) != rijndael.NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes (got %d)", rijndael.NonceSize, len(nonce))
	}
	return nonce, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, fmt.Errorf("hex string cannot be empty")
	}
	return hex.DecodeString(s)
}
