package rijndael

import "crypto/cipher"

type blockCipher struct {
	xk []byte
}

// NewCipher returns a cipher.Block backed by this package, so the block
// cipher can be plugged into the standard library modes.
func NewCipher(key []byte) (cipher.Block, error) {
	xk, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &blockCipher{xk: xk}, nil
}

func (c *blockCipher) BlockSize() int { return BlockSize }

func (c *blockCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}

	var s state
	copy(s[:], src)
	encryptState(&s, c.xk)
	copy(dst, s[:])
}

func (c *blockCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}

	var s state
	copy(s[:], src)
	decryptState(&s, c.xk)
	copy(dst, s[:])
}
