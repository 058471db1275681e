// Package slug generates and validates URL slugs with Unicode normalization.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinLength and MaxLength bound user-supplied slugs.
	MinLength = 3
	MaxLength = 50

	// fallback is used when the source string yields an empty slug.
	fallback = "portfolio"
)

var (
	invalidChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts a string to a URL-friendly slug: lowercase, accents removed,
// spaces as hyphens, anything outside [a-z0-9-] dropped. An empty result
// falls back to "portfolio".
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = invalidChars.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if result == "" {
		return fallback
	}
	if len(result) > MaxLength {
		result = strings.Trim(result[:MaxLength], "-")
	}
	return result
}

// Candidate derives the n-th slug candidate from a base slug. The first
// attempt is the base itself; later attempts append a numeric suffix.
func Candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	suffix := fmt.Sprintf("-%d", n+1)
	if len(base)+len(suffix) > MaxLength {
		base = strings.Trim(base[:MaxLength-len(suffix)], "-")
	}
	return base + suffix
}

// IsValid reports whether s is an acceptable user-supplied slug: 3-50 chars
// of [a-z0-9-], no leading/trailing or doubled hyphens.
func IsValid(s string) bool {
	if len(s) < MinLength || len(s) > MaxLength {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
