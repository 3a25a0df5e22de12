// Package textnorm normalises Indonesian query and corpus text: case
// folding, punctuation stripping, stopword removal, and length-gated
// stemming. Normalisation is deterministic and never fails; unexpected
// characters are simply dropped.
package textnorm

import (
	"strings"
	"unicode"
)

// stemLimit is the truncation length for long, unprotected words.
const stemLimit = 6

// stopwords is the fixed Indonesian stopword set.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"dan", "di", "ke", "dari", "yang", "untuk", "pada", "dengan",
		"atau", "juga", "sebagai", "dalam", "adalah", "itu", "ini",
		"saya", "kamu", "kami", "kita", "mereka", "akan", "tidak",
		"bisa", "telah", "sudah", "belum", "oleh", "karena", "agar",
		"sehingga", "supaya", "tentang", "tanpa", "setelah", "sebelum",
		"sesudah", "sejak", "hingga", "sampai", "selama", "antara",
		"bahwa", "namun", "tetapi", "jadi", "hanya", "masih", "lagi",
		"pun", "lah", "punya", "ada",
	} {
		stopwords[w] = struct{}{}
	}
}

// protectedTerms are domain words that must never be truncated, because the
// matcher relies on them verbatim. A word containing one of these as a
// substring is also preserved.
var protectedTerms = []string{
	"akreditasi", "universitas", "fakultas", "teknologi", "bandung",
	"institut", "kampus", "program", "mahasiswa", "penelitian",
}

// Fold lowercases text and strips every character that is not a letter,
// digit, underscore, or whitespace.
func Fold(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsStopword reports whether w is in the fixed stopword set.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// stem applies length-gated stemming: words up to six characters pass
// through, protected terms are preserved verbatim, everything else is
// truncated to its first six characters.
func stem(word string) string {
	runes := []rune(word)
	if len(runes) <= stemLimit {
		return word
	}
	for _, term := range protectedTerms {
		if word == term || strings.Contains(word, term) {
			return word
		}
	}
	return string(runes[:stemLimit])
}

// NormalizeTokens runs the full pipeline and returns the resulting tokens:
// fold, split on whitespace, drop stopwords, stem.
func NormalizeTokens(text string) []string {
	fields := strings.Fields(Fold(text))
	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if IsStopword(w) {
			continue
		}
		tokens = append(tokens, stem(w))
	}
	return tokens
}

// Normalize returns the normalised form of text, tokens rejoined with
// single spaces. Normalize is idempotent.
func Normalize(text string) string {
	return strings.Join(NormalizeTokens(text), " ")
}
