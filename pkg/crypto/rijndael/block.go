package rijndael

import "fmt"

// state is one block as a 4x4 matrix in column-major order: byte row+4*column.
type state [BlockSize]byte

// EncryptBlock encrypts a single 16-byte block with an expanded key produced by
// ExpandKey.
func EncryptBlock(block, expandedKey []byte) ([]byte, error) {
	if err := checkBlock(block, expandedKey); err != nil {
		return nil, err
	}

	var s state
	copy(s[:], block)
	encryptState(&s, expandedKey)
	return append([]byte(nil), s[:]...), nil
}

// DecryptBlock reverses EncryptBlock.
func DecryptBlock(block, expandedKey []byte) ([]byte, error) {
	if err := checkBlock(block, expandedKey); err != nil {
		return nil, err
	}

	var s state
	copy(s[:], block)
	decryptState(&s, expandedKey)
	return append([]byte(nil), s[:]...), nil
}

func checkBlock(block, expandedKey []byte) error {
	if len(block) != BlockSize {
		return fmt.Errorf("%w: %d bytes", ErrInvalidBlockSize, len(block))
	}
	switch len(expandedKey) {
	case ExpandedKeySize(KeySize128), ExpandedKeySize(KeySize192), ExpandedKeySize(KeySize256):
		return nil
	}
	return fmt.Errorf("%w: expanded key of %d bytes", ErrInvalidKeySize, len(expandedKey))
}

// encryptState assumes xk has already been validated.
func encryptState(s *state, xk []byte) {
	rounds := len(xk)/BlockSize - 1

	addRoundKey(s, xk, 0)
	for i := 1; i <= rounds; i++ {
		subBytes(s, &sbox)
		shiftRows(s)
		if i != rounds {
			mixColumns(s, &mixColumnMatrix)
		}
		addRoundKey(s, xk, i)
	}
}

func decryptState(s *state, xk []byte) {
	rounds := len(xk)/BlockSize - 1

	for i := rounds; i > 0; i-- {
		addRoundKey(s, xk, i)
		if i != rounds {
			mixColumns(s, &mixColumnMatrixInv)
		}
		shiftRowsInv(s)
		subBytes(s, &sboxInv)
	}
	addRoundKey(s, xk, 0)
}

func addRoundKey(s *state, xk []byte, round int) {
	rk := xk[round*BlockSize : (round+1)*BlockSize]
	for i := range s {
		s[i] ^= rk[i]
	}
}

func subBytes(s *state, table *[256]byte) {
	for i := range s {
		s[i] = table[s[i]]
	}
}

// shiftRows moves (row, column) to (row, column-row): the output at (r, c) is
// the input at (r, (c+r) mod 4).
func shiftRows(s *state) {
	in := *s
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			s[c*4+r] = in[((c+r)%4)*4+r]
		}
	}
}

func shiftRowsInv(s *state) {
	in := *s
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			s[c*4+r] = in[((c-r+4)%4)*4+r]
		}
	}
}

// mixColumns replaces every column with its product by m over GF(2^8).
func mixColumns(s *state, m *[4][4]byte) {
	for c := 0; c < 4; c++ {
		var col [4]byte
		copy(col[:], s[c*4:c*4+4])
		for r := 0; r < 4; r++ {
			var mixed byte
			for k := 0; k < 4; k++ {
				mixed ^= rijndaelMul(col[k], m[r][k])
			}
			s[c*4+r] = mixed
		}
	}
}
