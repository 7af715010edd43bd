package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// MakeRandHexString returns a hex-encoded string built from size random
// bytes, so the result is 2*size characters long.
func MakeRandHexString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand read: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateRandByteArray returns a slice of size random bytes. It panics only
// if the system entropy source is broken.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// WipeByteArray zeroes the buffer in place. Used for password buffers after
// they have been consumed.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
