package generator

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var ErrLength = errors.New("generator: length must be positive")

// RandomString returns length characters drawn uniformly from [0-9A-Za-z]
// using r as the entropy source.
func RandomString(r io.Reader, length int) (string, error) {
	if length <= 0 {
		return "", ErrLength
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(r, size)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
