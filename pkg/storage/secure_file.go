package storage

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/rijndael/pkg/crypto/keyderive"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
)

const (
	FormatVersion = 1
	checkSize     = 4
)

// Envelope cipher modes. In CTR mode the IV is the initial counter block.
const (
	ModeCBC = "cbc"
	ModeCTR = "ctr"
)

var ErrWrongPassword = errors.New("wrong password")

// SecureStorage keeps one password protected file. The payload is encrypted
// with AES-CBC or AES-CTR under a PBKDF2 key. It is NOT authenticated: tampering with the
// ciphertext goes undetected. The key check value only catches a wrong password.
type SecureStorage struct {
	filepath   string
	keySize    int
	iterations int
	mode       string
	perm       os.FileMode
}

// EncryptedData is the on-disk JSON envelope.
type EncryptedData struct {
	Version    int    `json:"version"`
	KeySize    int    `json:"key_size"`
	Iterations int    `json:"iterations"`
	Mode       string `json:"mode"`
	Salt       []byte `json:"salt"`
	IV         []byte `json:"iv"`
	Check      []byte `json:"check"`
	Length     int    `json:"length"`
	Ciphertext []byte `json:"ciphertext"`
}

type Option func(*SecureStorage)

func WithKeySize(keySize int) Option {
	return func(s *SecureStorage) { s.keySize = keySize }
}

func WithIterations(iterations int) Option {
	return func(s *SecureStorage) { s.iterations = iterations }
}

// WithMode selects ModeCBC or ModeCTR for new envelopes.
func WithMode(mode string) Option {
	return func(s *SecureStorage) { s.mode = mode }
}

func WithPermissions(perm os.FileMode) Option {
	return func(s *SecureStorage) { s.perm = perm }
}

func NewSecureStorage(filepath string, opts ...Option) *SecureStorage {
	s := &SecureStorage{
		filepath:   filepath,
		keySize:    rijndael.KeySize256,
		iterations: keyderive.DefaultIterations,
		mode:       ModeCBC,
		perm:       0600,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SecureStorage) Save(data []byte, password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	salt, err := secure.RandomBytes(keyderive.SaltSize)
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	iv, err := secure.RandomBytes(rijndael.BlockSize)
	if err != nil {
		return fmt.Errorf("failed to generate IV: %w", err)
	}

	key, err := keyderive.Derive(password, salt, s.iterations, s.keySize)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}
	defer secure.Zero(key)

	ciphertext, err := encrypt(s.mode, data, key, iv)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	encrypted := EncryptedData{
		Version:    FormatVersion,
		KeySize:    s.keySize,
		Iterations: s.iterations,
		Mode:       s.mode,
		Salt:       salt,
		IV:         iv,
		Check:      keyCheck(key),
		Length:     len(data),
		Ciphertext: ciphertext,
	}

	jsonData, err := json.MarshalIndent(encrypted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal encrypted data: %w", err)
	}

	dir := filepath.Dir(s.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(s.filepath, jsonData, s.perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *SecureStorage) Load(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}

	jsonData, err := os.ReadFile(s.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var encrypted EncryptedData
	if err := json.Unmarshal(jsonData, &encrypted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encrypted data: %w", err)
	}
	if err := encrypted.validate(); err != nil {
		return nil, err
	}

	key, err := keyderive.Derive(password, encrypted.Salt, encrypted.Iterations, encrypted.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer secure.Zero(key)

	if subtle.ConstantTimeCompare(keyCheck(key), encrypted.Check) != 1 {
		return nil, ErrWrongPassword
	}

	plaintext, err := decrypt(encrypted.Mode, encrypted.Ciphertext, key, encrypted.IV)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	// CBC leaves its padding in place; the recorded length strips it.
	return plaintext[:encrypted.Length], nil
}

func (s *SecureStorage) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

// Delete wipes the envelope file. A missing file is not an error.
func (s *SecureStorage) Delete() error {
	if !s.Exists() {
		return nil
	}
	return Wipe(s.filepath)
}

// Wipe overwrites the file at path with random bytes before removing it.
func Wipe(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file for secure deletion: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("refusing to wipe %s: not a regular file", path)
	}

	noise, err := secure.RandomBytes(int(info.Size()))
	if err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}
	defer secure.Zero(noise)

	if err := os.WriteFile(path, noise, 0600); err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	return os.Remove(path)
}

func (e *EncryptedData) validate() error {
	if e.Version != FormatVersion {
		return fmt.Errorf("unsupported envelope version %d", e.Version)
	}
	switch e.Mode {
	case ModeCBC:
		if len(e.Ciphertext)%rijndael.BlockSize != 0 {
			return fmt.Errorf("ciphertext is not a whole number of blocks")
		}
		if e.Length < 0 || e.Length > len(e.Ciphertext) || len(e.Ciphertext)-e.Length >= rijndael.BlockSize {
			return fmt.Errorf("recorded length %d does not match ciphertext of %d bytes", e.Length, len(e.Ciphertext))
		}
	case ModeCTR:
		if e.Length != len(e.Ciphertext) {
			return fmt.Errorf("recorded length %d does not match ciphertext of %d bytes", e.Length, len(e.Ciphertext))
		}
	default:
		return fmt.Errorf("unsupported envelope mode %q", e.Mode)
	}
	if err := keyderive.CheckIterations(e.Iterations); err != nil {
		return fmt.Errorf("invalid envelope: %w", err)
	}
	if len(e.Check) != checkSize {
		return fmt.Errorf("missing key check value")
	}
	return nil
}

func encrypt(mode string, data, key, iv []byte) ([]byte, error) {
	switch mode {
	case ModeCBC:
		return rijndael.EncryptCBC(data, key, iv)
	case ModeCTR:
		counter, err := rijndael.NewCounter(iv)
		if err != nil {
			return nil, err
		}
		return rijndael.EncryptCTR(data, key, counter)
	default:
		return nil, fmt.Errorf("unsupported envelope mode %q", mode)
	}
}

func decrypt(mode string, data, key, iv []byte) ([]byte, error) {
	if mode == ModeCTR {
		return encrypt(mode, data, key, iv)
	}
	return rijndael.DecryptCBC(data, key, iv)
}

func keyCheck(key []byte) []byte {
	h := sha256.Sum256(append([]byte("rijndael-check"), key...))
	return h[:checkSize]
}
