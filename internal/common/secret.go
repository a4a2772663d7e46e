// Package common holds small helpers shared by the client packages.
package common

// Wipe zeroes b in place. Callers use it on password buffers once the
// password has been sent.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
