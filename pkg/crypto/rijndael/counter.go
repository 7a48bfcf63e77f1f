package rijndael

import "fmt"

// Counter is a 16-byte big-endian counter feeding CTR mode. A Counter is owned
// by a single call and is not safe for concurrent use.
type Counter struct {
	value [BlockSize]byte
}

// NewCounter returns a counter starting at initial, which must be 16 bytes.
func NewCounter(initial []byte) (*Counter, error) {
	if len(initial) != BlockSize {
		return nil, fmt.Errorf("%w: counter of %d bytes", ErrInvalidBlockSize, len(initial))
	}

	c := &Counter{}
	copy(c.value[:], initial)
	return c, nil
}

// Next returns the current value and then increments the counter by one.
// 0xff..ff wraps around to zero.
func (c *Counter) Next() [BlockSize]byte {
	current := c.value
	for i := BlockSize - 1; i >= 0; i-- {
		c.value[i]++
		if c.value[i] != 0 {
			break
		}
	}
	return current
}

// Value returns the current value without incrementing.
func (c *Counter) Value() [BlockSize]byte {
	return c.value
}

// Add advances the counter by n, so that Next yields the value for block n of
// a stream started at the current position.
func (c *Counter) Add(n uint64) {
	for i := BlockSize - 1; i >= 0 && n > 0; i-- {
		sum := uint64(c.value[i]) + n&0xff
		c.value[i] = byte(sum)
		n = n>>8 + sum>>8
	}
}
