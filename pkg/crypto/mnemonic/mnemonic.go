// Package mnemonic writes AES keys down as BIP-39 word lists. 12, 18 and 24
// words carry exactly 128, 192 and 256 bits of entropy, so a mnemonic maps one
// to one onto an AES-128, AES-192 or AES-256 key.
package mnemonic

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/tyler-smith/go-bip39"
)

type Mnemonic struct {
	words []string
}

// NewForKeySize generates a fresh random key of keySize bytes and returns its
// mnemonic.
func NewForKeySize(keySize int) (*Mnemonic, error) {
	if !rijndael.ValidKeySize(keySize) {
		return nil, fmt.Errorf("%w: %d bytes", rijndael.ErrInvalidKeySize, keySize)
	}

	entropy, err := bip39.NewEntropy(keySize * 8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}

	return FromKey(entropy)
}

// FromKey encodes an existing AES key.
func FromKey(key []byte) (*Mnemonic, error) {
	if !rijndael.ValidKeySize(len(key)) {
		return nil, fmt.Errorf("%w: %d bytes", rijndael.ErrInvalidKeySize, len(key))
	}

	words, err := bip39.NewMnemonic(key)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic from key: %w", err)
	}

	return &Mnemonic{
		words: strings.Split(words, " "),
	}, nil
}

// FromWords parses a mnemonic. The checksum is verified and the word count
// must correspond to an AES key size.
func FromWords(words string) (*Mnemonic, error) {
	words = strings.Join(strings.Fields(words), " ")
	if !bip39.IsMnemonicValid(words) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	m := &Mnemonic{
		words: strings.Split(words, " "),
	}
	if _, err := KeySizeFromWordCount(m.WordCount()); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mnemonic) Words() string {
	return strings.Join(m.words, " ")
}

func (m *Mnemonic) WordList() []string {
	result := make([]string, len(m.words))
	copy(result, m.words)
	return result
}

func (m *Mnemonic) WordCount() int {
	return len(m.words)
}

// Key returns the AES key the mnemonic encodes.
func (m *Mnemonic) Key() ([]byte, error) {
	key, err := bip39.EntropyFromMnemonic(m.Words())
	if err != nil {
		return nil, fmt.Errorf("failed to get key from mnemonic: %w", err)
	}
	return key, nil
}

// Fingerprint is a short identifier for a key that is safe to display: the
// first four bytes of SHA-256 over the key, hex encoded.
func (m *Mnemonic) Fingerprint() (string, error) {
	key, err := m.Key()
	if err != nil {
		return "", err
	}

	h := sha256.Sum256(key)
	return hex.EncodeToString(h[:4]), nil
}

// KeySizeFromWordCount maps 12, 18 and 24 words to 16, 24 and 32-byte keys.
func KeySizeFromWordCount(wordCount int) (int, error) {
	switch wordCount {
	case 12:
		return rijndael.KeySize128, nil
	case 18:
		return rijndael.KeySize192, nil
	case 24:
		return rijndael.KeySize256, nil
	default:
		return 0, fmt.Errorf("mnemonic must have 12, 18 or 24 words to encode an AES key (got %d)", wordCount)
	}
}
