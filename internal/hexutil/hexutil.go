// Package hexutil provides precomputed hex encoding tables for payload
// transformation hot paths. Lookup tables beat fmt.Sprintf when a
// variant generator touches every byte of every variant.
package hexutil

// Hex character tables
const (
	HexUpper = "0123456789ABCDEF"
	HexLower = "0123456789abcdef"
)

var (
	// URLEncoded contains "%XX" for each byte value (0-255), uppercase hex
	URLEncoded [256]string

	// HexEscape contains "\xXX" for each byte value, lowercase hex
	HexEscape [256]string
)

func init() {
	for i := 0; i < 256; i++ {
		hi := string(HexUpper[i>>4])
		lo := string(HexUpper[i&0x0F])
		URLEncoded[i] = "%" + hi + lo
		HexEscape[i] = "\\x" + string(HexLower[i>>4]) + string(HexLower[i&0x0F])
	}
}
