package service

import (
	"crypto/rand"
	"math/big"
)

const refAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// newBookingRef returns a customer-facing reference like CB-7KQ2XM.
// Ambiguous characters (0/O, 1/I/L) are excluded.
func newBookingRef() string {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf[i] = refAlphabet[0]
			continue
		}
		buf[i] = refAlphabet[n.Int64()]
	}
	return "CB-" + string(buf)
}
