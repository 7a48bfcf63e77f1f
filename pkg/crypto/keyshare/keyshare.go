// Package keyshare backs up AES keys as Shamir shares over GF(2^8). Any
// threshold shares rebuild the key; fewer reveal nothing about it.
//
// A share is the byte-wise polynomial evaluation of the key followed by its
// one-byte x coordinate, so a share is one byte longer than the key.
package keyshare

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/hashicorp/vault/shamir"
)

type Share []byte

// Index is the x coordinate of the share.
func (s Share) Index() byte {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

func (s Share) String() string {
	return hex.EncodeToString(s)
}

type Config struct {
	Parts     int
	Threshold int
}

func (c Config) Validate() error {
	if c.Parts < 2 {
		return fmt.Errorf("parts must be at least 2, got %d", c.Parts)
	}
	if c.Parts > 255 {
		return fmt.Errorf("parts cannot exceed 255, got %d", c.Parts)
	}
	if c.Threshold < 2 {
		return fmt.Errorf("threshold must be at least 2, got %d", c.Threshold)
	}
	if c.Threshold > c.Parts {
		return fmt.Errorf("threshold (%d) cannot be greater than parts (%d)", c.Threshold, c.Parts)
	}
	return nil
}

// Split divides an AES key into cfg.Parts shares, any cfg.Threshold of which
// rebuild it.
func Split(key []byte, cfg Config) ([]Share, error) {
	if !rijndael.ValidKeySize(len(key)) {
		return nil, fmt.Errorf("%w: %d bytes", rijndael.ErrInvalidKeySize, len(key))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	parts, err := shamir.Split(key, cfg.Parts, cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split key: %w", err)
	}

	shares := make([]Share, len(parts))
	for i, p := range parts {
		shares[i] = Share(p)
	}
	return shares, nil
}

// Combine rebuilds the key from at least threshold shares. With fewer shares
// the result is a wrong key of the right length; that cannot be detected here.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) < 2 {
		return nil, fmt.Errorf("at least 2 shares are required, got %d", len(shares))
	}

	parts := make([][]byte, len(shares))
	for i, s := range shares {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		if len(s) != len(shares[0]) {
			return nil, fmt.Errorf("share %d has %d bytes, share 1 has %d", i+1, len(s), len(shares[0]))
		}
		parts[i] = s
	}

	key, err := shamir.Combine(parts)
	if err != nil {
		return nil, fmt.Errorf("failed to combine shares: %w", err)
	}
	return key, nil
}

// ParseShare decodes a hex share.
func ParseShare(s string) (Share, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid share hex: %w", err)
	}

	share := Share(b)
	if err := share.validate(); err != nil {
		return nil, err
	}
	return share, nil
}

// ParseShares decodes every entry of list, skipping blank ones.
func ParseShares(list []string) ([]Share, error) {
	var shares []Share
	for _, item := range list {
		if strings.TrimSpace(item) == "" {
			continue
		}
		share, err := ParseShare(item)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	return shares, nil
}

func (s Share) validate() error {
	if !rijndael.ValidKeySize(len(s) - 1) {
		return fmt.Errorf("share of %d bytes does not hold a 16, 24 or 32-byte key", len(s))
	}
	if s.Index() == 0 {
		return fmt.Errorf("share index cannot be 0")
	}
	return nil
}
