package rijndael

import "fmt"

// EncryptCBC encrypts plaintext in cipher block chaining mode.
//
// Only a short final block is padded, with r bytes of value r where r is the
// number of missing bytes. A plaintext that is already a multiple of the block
// size gets no pad block, so the ciphertext has the same length. This differs
// from PKCS#7 and is kept for compatibility.
func EncryptCBC(plaintext, key, iv []byte) ([]byte, error) {
	xk, err := prepareCBC(key, iv)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, blockCount(len(plaintext))*BlockSize)
	var prev state
	copy(prev[:], iv)

	for off := 0; off < len(plaintext); off += BlockSize {
		var s state
		n := copy(s[:], plaintext[off:])
		pad := byte(BlockSize - n)
		for i := n; i < BlockSize; i++ {
			s[i] = pad
		}

		xorState(&s, &prev)
		encryptState(&s, xk)
		out = append(out, s[:]...)
		prev = s
	}

	return out, nil
}

// DecryptCBC decrypts ciphertext in cipher block chaining mode. The output has
// the same length as ciphertext and any padding added by EncryptCBC is left in
// place.
func DecryptCBC(ciphertext, key, iv []byte) ([]byte, error) {
	xk, err := prepareCBC(key, iv)
	if err != nil {
		return nil, err
	}

	out := make([]byte, blockCount(len(ciphertext))*BlockSize)
	var prev state
	copy(prev[:], iv)

	for off := 0; off < len(ciphertext); off += BlockSize {
		var block state
		copy(block[:], ciphertext[off:])

		s := block
		decryptState(&s, xk)
		xorState(&s, &prev)
		copy(out[off:], s[:])
		prev = block
	}

	return out[:len(ciphertext)], nil
}

// DecryptCTR XORs data with the keystream obtained by encrypting successive
// counter values. The counter is advanced once per block, including a short
// final block. The operation is its own inverse.
func DecryptCTR(data, key []byte, counter *Counter) ([]byte, error) {
	if counter == nil {
		return nil, fmt.Errorf("%w: nil counter", ErrInvalidBlockSize)
	}
	xk, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, blockCount(len(data))*BlockSize)
	for off := 0; off < len(data); off += BlockSize {
		keystream := state(counter.Next())
		encryptState(&keystream, xk)

		var s state
		copy(s[:], data[off:])
		xorState(&s, &keystream)
		copy(out[off:], s[:])
	}

	return out[:len(data)], nil
}

// EncryptCTR is DecryptCTR; CTR mode is symmetric.
func EncryptCTR(data, key []byte, counter *Counter) ([]byte, error) {
	return DecryptCTR(data, key, counter)
}

func prepareCBC(key, iv []byte) ([]byte, error) {
	if !ValidKeySize(len(key)) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, len(key))
	}
	if len(iv) != BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidIVSize, len(iv))
	}
	return ExpandKey(key)
}

func blockCount(n int) int {
	return (n + BlockSize - 1) / BlockSize
}

func xorState(dst, src *state) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
