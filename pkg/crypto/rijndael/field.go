package rijndael

// GF(2^8) arithmetic modulo the Rijndael polynomial x^8 + x^4 + x^3 + x + 1,
// done through the log/exp tables in tables.go.

// rijndaelMul multiplies a and b in GF(2^8).
func rijndaelMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return rijndaelExp[(int(rijndaelLog[a])+int(rijndaelLog[b]))%255]
}
