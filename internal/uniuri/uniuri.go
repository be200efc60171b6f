// Package uniuri generates short cryptographically secure random strings,
// used as run identifiers in import log lines.
package uniuri

import "crypto/rand"

// chars is the alphabet used for generated strings. Its length (62) does not
// divide 256, so bytes beyond the largest unbiased value are rejected below.
var chars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// NewLen returns a new random string of the provided length, consisting of
// letters and digits.
func NewLen(length int) string {
	if length <= 0 {
		return ""
	}

	// Largest byte value that maps onto the alphabet without modulo bias.
	maxRb := 255 - (256 % len(chars))

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) > maxRb {
				continue
			}

			out = append(out, chars[int(rb)%len(chars)])
			if len(out) == length {
				return string(out)
			}
		}
	}
}
