package idgen

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Crockford's base32, lowercase.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

func init() {
	if len(alphabet) != 32 {
		panic("must not happen")
	}
}

// RequestID returns a sortable identifier: 10 chars of millisecond timestamp followed by 10
// random chars. Uniqueness is best-effort, it only correlates log lines.
func RequestID() string {
	var b strings.Builder
	b.Grow(20)
	ts := uint64(time.Now().UnixMilli()) & ((1 << 50) - 1)
	for i := 45; i >= 0; i -= 5 {
		_ = b.WriteByte(alphabet[(ts>>i)&31])
	}
	r := rand.Uint64()
	for range 10 {
		_ = b.WriteByte(alphabet[r&31])
		r >>= 5
	}
	return b.String()
}
