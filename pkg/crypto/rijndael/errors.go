package rijndael

import "errors"

// Precondition failures. They are always returned wrapped, test with errors.Is.
// A missing CTR counter is reported as ErrInvalidBlockSize.
var (
	ErrInvalidKeySize   = errors.New("rijndael: invalid key size")
	ErrInvalidBlockSize = errors.New("rijndael: invalid block size")
	ErrInvalidIVSize    = errors.New("rijndael: invalid IV size")
	ErrDecode           = errors.New("rijndael: malformed input")
)
