package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	asinIDPrefix = "asin-"
	slugIDPrefix = "cand-"

	// maxSlugLen caps both individual slugs and the composed identity.
	maxSlugLen = 80
)

// foldDiacritics strips combining marks so accented product names slug the
// same as their ASCII spelling.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lower-cases s, folds diacritics, strips quote characters, collapses
// every run of non-alphanumeric characters to a single hyphen, trims leading
// and trailing hyphens, and caps the result at 80 characters. An input that
// reduces to nothing yields the empty string.
func Slugify(s string) string {
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		switch {
		case r == '\'' || r == '"' || r == '‘' || r == '’' || r == '“' || r == '”':
			// Quotes vanish entirely rather than becoming separators.
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	out := b.String()
	if len(out) > maxSlugLen {
		out = out[:maxSlugLen]
		out = strings.TrimRight(out, "-")
	}
	return out
}

// DeriveIdentity produces the stable identifier for a raw candidate. When the
// external catalog ID is present the identity is the lower-cased ASIN behind a
// fixed prefix; otherwise it is built from slugs of the name and base URL.
// Derivation is a pure function of the candidate and never fails, so it can
// run before any validation.
func DeriveIdentity(c RawCandidate) string {
	if asin := strings.TrimSpace(c.ASIN); asin != "" {
		return asinIDPrefix + strings.ToLower(asin)
	}

	id := slugIDPrefix + Slugify(c.Name) + "-" + Slugify(c.BaseAmazonURL)
	if len(id) > maxSlugLen {
		id = id[:maxSlugLen]
		id = strings.TrimRight(id, "-")
	}
	return id
}
