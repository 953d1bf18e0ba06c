// ABOUTME: URL normalization for cache keys, lock keys and rate-limit partitions
// ABOUTME: Makes differently encoded or cased spellings of one URL collide on purpose

package urlnorm

import "strings"

const (
	// CachePrefix namespaces feed entries in the cache store
	CachePrefix = "feed:"

	// LockPrefix namespaces lock records so they never shadow cache entries
	LockPrefix = "lock:"
)

// Normalize canonicalizes a raw URL string. It percent-decodes until no valid
// escape is left, lower-cases and trims surrounding whitespace. It never fails:
// malformed escapes are kept as-is.
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	decoded := raw
	for {
		next := Unescape(decoded)
		if next == decoded {
			break
		}
		decoded = next
	}

	return strings.TrimSpace(strings.ToLower(decoded))
}

// CacheKey returns the cache key for a raw URL
func CacheKey(raw string) string {
	return CachePrefix + Normalize(raw)
}

// LockKey returns the lock key guarding the cache entry of a raw URL
func LockKey(raw string) string {
	return LockPrefix + CacheKey(raw)
}

// Unescape decodes every valid %XX sequence once. Invalid sequences are copied
// through unchanged and '+' is not treated as a space.
func Unescape(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
