package secure

import (
	"crypto/rand"
	"fmt"
	"runtime"
)

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ZeroAll zeroes every buffer passed in. Nil buffers are skipped.
func ZeroAll(bufs ...[]byte) {
	for _, b := range bufs {
		Zero(b)
	}
}

// RandomBytes returns size bytes from crypto/rand, used for IVs, nonces,
// salts and generated keys.
func RandomBytes(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid random size %d", size)
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}
