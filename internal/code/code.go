// Package code generates and validates pickup codes. A code is a
// fixed-length digit string handed to the resident at registration time
// and typed back at the front desk on withdrawal.
package code

import (
	"crypto/rand"
	"math/big"
)

// Validate reports whether code has exactly the configured length and is
// composed only of digits. Lookup and confirmation calls are gated on
// this before any store I/O.
func Validate(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// Generate produces a random code that satisfies Validate for the same
// length. Uniqueness among pending deliveries is enforced at insert time
// by the caller, not here.
func Generate(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// a zero digit keeps the code well-formed.
			buf[i] = '0'
			continue
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf)
}
