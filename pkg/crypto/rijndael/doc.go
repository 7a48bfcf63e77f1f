// Package rijndael is a from-scratch implementation of the AES (Rijndael) block
// cipher for 128, 192 and 256-bit keys.
//
// It provides the key schedule, single block encryption and decryption, CBC
// encryption and decryption, CTR mode and a password based text format built on
// CTR. Nothing here is authenticated and nothing here is constant time.
//
// CBC padding follows the historical behaviour of the format this package is
// compatible with: only a short final block is padded (r bytes of value r), a
// block aligned plaintext gets no extra pad block, and DecryptCBC never removes
// padding. Callers that need the original length must track it themselves.
package rijndael
