package wallet

import (
	"crypto/rand"
	"fmt"
	"io"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateCouponCode returns prefix followed by n uppercase base-36
// characters drawn from r. Bytes at or above 252 are rejected so every
// character is equally likely.
func GenerateCouponCode(prefix string, n int, r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	out := make([]byte, 0, len(prefix)+n)
	out = append(out, prefix...)

	var buf [16]byte
	for len(out) < len(prefix)+n {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return "", fmt.Errorf("wallet: coupon code: %w", err)
		}
		for _, b := range buf {
			if b >= 252 {
				continue
			}
			out = append(out, base36[b%36])
			if len(out) == len(prefix)+n {
				break
			}
		}
	}
	return string(out), nil
}
