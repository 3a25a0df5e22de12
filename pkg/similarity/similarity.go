// Package similarity provides pairwise string similarity scoring for fuzzy
// word matching. All functions are pure, symmetric, and return scores in
// [0, 1]; empty or non-alphanumeric input scores 0 rather than erroring.
package similarity

import (
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	// maxEditDistance caps how many edits still count as a fuzzy match.
	maxEditDistance = 4
	// phoneticBonus is awarded when two words share a Soundex code.
	phoneticBonus = 0.8
	// typoCollapseScore is awarded when words are identical after
	// collapsing repeated characters ("fakultaas" vs "fakultas").
	typoCollapseScore = 0.95
)

// clean lowercases s and strips everything that is not a letter or digit.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EditDistanceScore scores two words by Levenshtein distance, normalised to
// [0, 1]. The allowed distance adapts to word length: min(4, max(3, len/2)).
// Anything beyond the adaptive cap scores 0.
func EditDistanceScore(a, b string) float64 {
	ca, cb := clean(a), clean(b)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1.0
	}
	dist := edlib.LevenshteinDistance(ca, cb)
	maxLen := len(ca)
	if len(cb) > maxLen {
		maxLen = len(cb)
	}
	adaptive := maxLen / 2
	if adaptive < 3 {
		adaptive = 3
	}
	if adaptive > maxEditDistance {
		adaptive = maxEditDistance
	}
	if dist > adaptive {
		return 0
	}
	return 1.0 - float64(dist)/float64(maxLen)
}

// soundexCodes maps consonants to their Soundex digit class. Unlisted
// characters (vowels, h, w, y, digits) are skipped entirely.
var soundexCodes = map[byte]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// Soundex returns the 4-character phonetic code of a word: first character
// kept, consonants mapped to digit classes, consecutive duplicate codes
// collapsed, padded with zeros.
func Soundex(word string) string {
	w := clean(word)
	if w == "" {
		return ""
	}
	code := strings.ToUpper(w[:1])
	for i := 1; i < len(w); i++ {
		d, ok := soundexCodes[w[i]]
		if !ok {
			continue
		}
		if code[len(code)-1] == d {
			continue
		}
		code += string(d)
	}
	code += "000"
	return code[:4]
}

// PhoneticScore awards a fixed bonus when two words share a Soundex code.
func PhoneticScore(a, b string) float64 {
	ca, cb := clean(a), clean(b)
	if ca == "" || cb == "" {
		return 0
	}
	if Soundex(ca) == Soundex(cb) {
		return phoneticBonus
	}
	return 0
}

// ngrams returns the set of contiguous substrings of length n.
func ngrams(s string, n int) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i+n <= len(s); i++ {
		set[s[i:i+n]] = struct{}{}
	}
	return set
}

// NGramJaccard computes Jaccard similarity over the n-gram sets of both
// strings. Two strings too short to produce any n-grams score 1.0; exactly
// one empty set scores 0.
func NGramJaccard(a, b string, n int) float64 {
	sa := ngrams(strings.ToLower(a), n)
	sb := ngrams(strings.ToLower(b), n)
	if len(sa) == 0 && len(sb) == 0 {
		return 1.0
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for g := range sa {
		if _, ok := sb[g]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// CharFrequencyScore compares the character count distributions of two
// strings: 1 minus the summed absolute count differences normalised by the
// combined length, floored at 0.
func CharFrequencyScore(a, b string) float64 {
	ca, cb := clean(a), clean(b)
	if ca == "" || cb == "" {
		return 0
	}
	freqA := make(map[rune]int)
	freqB := make(map[rune]int)
	for _, r := range ca {
		freqA[r]++
	}
	for _, r := range cb {
		freqB[r]++
	}
	totalDiff := 0
	for r, n := range freqA {
		d := n - freqB[r]
		if d < 0 {
			d = -d
		}
		totalDiff += d
	}
	for r, n := range freqB {
		if _, seen := freqA[r]; !seen {
			totalDiff += n
		}
	}
	total := len(ca) + len(cb)
	sim := 1.0 - float64(totalDiff)/float64(total)
	if sim < 0 {
		return 0
	}
	return sim
}

// collapseRepeats removes consecutive duplicate characters ("aaa" -> "a").
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r != prev {
			b.WriteRune(r)
			prev = r
		}
	}
	return b.String()
}

// TypoPatternScore recognises repeated-character typos. Words identical
// after collapsing repeats score 0.95; one collapsed word contained in the
// other scores proportionally to the length ratio.
func TypoPatternScore(a, b string) float64 {
	ca, cb := clean(a), clean(b)
	if ca == "" || cb == "" {
		return 0
	}
	na, nb := collapseRepeats(ca), collapseRepeats(cb)
	if na == nb {
		return typoCollapseScore
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		shorter, longer := len(na), len(nb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if shorter > 0 {
			return float64(shorter) / float64(longer) * 0.9
		}
	}
	return 0
}

// SequenceRatio is the diff-style longest-matching-blocks ratio between two
// strings, in [0, 1].
func SequenceRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// Combined blends every metric into one weighted fuzzy score. Inputs are
// normalised to lowercase alphanumeric first; identical words score exactly
// 1.0, and a strong repeated-character typo signal (> 0.9) short-circuits
// the blend. Words of similar length get a small flat bonus.
func Combined(a, b string) float64 {
	ca, cb := clean(a), clean(b)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1.0
	}

	pattern := TypoPatternScore(ca, cb)
	if pattern > 0.9 {
		return pattern
	}

	score := EditDistanceScore(ca, cb)*0.25 +
		NGramJaccard(ca, cb, 2)*0.20 +
		NGramJaccard(ca, cb, 3)*0.15 +
		CharFrequencyScore(ca, cb)*0.15 +
		PhoneticScore(ca, cb)*0.10 +
		SequenceRatio(ca, cb)*0.10 +
		pattern*0.05

	lengthDiff := len(ca) - len(cb)
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	if lengthDiff <= 2 {
		score += 0.05
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
