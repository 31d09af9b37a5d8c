// Package slugify turns offer titles into URL-safe slugs.
package slugify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxLen   = 80
	fallback = "offer"
)

// Make folds accents, lowercases and joins ASCII letter/digit runs with "-".
func Make(s string) string {
	// Transformers and casers keep state, so they are built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	pendingDash := false
	for _, r := range folded {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	out := b.String()
	if len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	if out == "" {
		return fallback
	}
	return out
}

// Token returns n random lowercase hex characters (n <= 12).
func Token(n int) string {
	if n > 12 {
		n = 12
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// WithToken is the default offer slug: Make(title) plus a six character token.
func WithToken(title string) string {
	return Make(title) + "-" + Token(6)
}
