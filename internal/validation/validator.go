package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

func ValidateHex(input string) error {
	input = strings.TrimPrefix(strings.TrimSpace(input), "0x")
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

func ValidateKeySize(size int) error {
	switch size {
	case 16, 24, 32:
		return nil
	}
	return fmt.Errorf("key size must be 16, 24 or 32 bytes (got %d)", size)
}

// ValidateKeyHex checks that input is a hex encoded 128, 192 or 256-bit key.
func ValidateKeyHex(input string) error {
	if err := ValidateHex(input); err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	return ValidateKeySize(hexLen(input))
}

func ValidateIVHex(input string) error {
	if err := ValidateHex(input); err != nil {
		return fmt.Errorf("invalid IV: %w", err)
	}
	if n := hexLen(input); n != 16 {
		return fmt.Errorf("IV must be 16 bytes (got %d)", n)
	}
	return nil
}

func ValidateNonceHex(input string) error {
	if err := ValidateHex(input); err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}
	if n := hexLen(input); n != 8 {
		return fmt.Errorf("nonce must be 8 bytes (got %d)", n)
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) > 1024 {
		return fmt.Errorf("password too long (max 1024 bytes)")
	}

	for i, ch := range password {
		if ch == 0 {
			return fmt.Errorf("password contains null character at position %d", i)
		}
	}

	return nil
}

// NormalizeWords lower-cases a pasted mnemonic and collapses any run of
// whitespace, line breaks included, to a single space.
func NormalizeWords(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(input)), " ")
}

// StripWhitespace removes all whitespace, so wrapped base64 decodes as one
// line.
func StripWhitespace(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

func hexLen(input string) int {
	return len(strings.TrimPrefix(strings.TrimSpace(input), "0x")) / 2
}
