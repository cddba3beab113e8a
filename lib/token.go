package lib

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/gosimple/slug"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n characters drawn uniformly from alphabet using crypto/rand.
func RandomString(alphabet string, n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	limit := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// RandomInt returns a uniform integer in [lo, hi].
func RandomInt(lo, hi int) (int, error) {
	if hi <= lo {
		return lo, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return 0, err
	}
	return lo + int(n.Int64()), nil
}

// Slugify transliterates s to ASCII and joins its words with dashes.
func Slugify(s string) string {
	return slug.Make(s)
}
