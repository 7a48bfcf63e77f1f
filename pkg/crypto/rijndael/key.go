package rijndael

import "fmt"

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// Supported key sizes in bytes.
const (
	KeySize128 = 16
	KeySize192 = 24
	KeySize256 = 32
)

// scheduleShape describes one group of words appended by the key schedule after
// the core word and the three plain words that every key size shares.
type scheduleShape struct {
	subWord   bool // one S-box word follows the first four
	tailWords int  // plain XOR words appended last
}

var scheduleShapes = map[int]scheduleShape{
	KeySize128: {subWord: false, tailWords: 0},
	KeySize192: {subWord: false, tailWords: 2},
	KeySize256: {subWord: true, tailWords: 3},
}

// ValidKeySize reports whether n is a supported key length in bytes.
func ValidKeySize(n int) bool {
	_, ok := scheduleShapes[n]
	return ok
}

// ExpandedKeySize returns the key schedule length for a key of keySize bytes:
// 176, 208 or 240.
func ExpandedKeySize(keySize int) int {
	return (keySize/4 + 7) * BlockSize
}

// ExpandKey derives the round key sequence for key. The result is a run of
// 16-byte round keys, one more than the number of rounds.
func ExpandKey(key []byte) ([]byte, error) {
	keySize := len(key)
	shape, ok := scheduleShapes[keySize]
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, keySize)
	}

	target := ExpandedKeySize(keySize)
	// 192 and 256-bit groups overshoot the target by less than one key length.
	xk := make([]byte, keySize, target+keySize)
	copy(xk, key)

	for i := 1; len(xk) < target; i++ {
		xk = appendWord(xk, keySize, scheduleCore(lastWord(xk), i))
		for j := 0; j < 3; j++ {
			xk = appendWord(xk, keySize, lastWord(xk))
		}
		if shape.subWord {
			xk = appendWord(xk, keySize, subWord(lastWord(xk)))
		}
		for j := 0; j < shape.tailWords; j++ {
			xk = appendWord(xk, keySize, lastWord(xk))
		}
	}

	return xk[:target], nil
}

func lastWord(xk []byte) [4]byte {
	var w [4]byte
	copy(w[:], xk[len(xk)-4:])
	return w
}

// appendWord XORs w with the word keySize bytes back and appends the result.
func appendWord(xk []byte, keySize int, w [4]byte) []byte {
	earlier := xk[len(xk)-keySize:]
	for i := range w {
		w[i] ^= earlier[i]
	}
	return append(xk, w[:]...)
}

// scheduleCore rotates w left by one byte, substitutes it and mixes in the
// round constant for iteration i.
func scheduleCore(w [4]byte, i int) [4]byte {
	w = [4]byte{w[1], w[2], w[3], w[0]}
	w = subWord(w)
	w[0] ^= rcon[i]
	return w
}

func subWord(w [4]byte) [4]byte {
	for i := range w {
		w[i] = sbox[w[i]]
	}
	return w
}
