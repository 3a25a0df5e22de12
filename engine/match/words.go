// Package match scores user queries against the corpus. It combines a
// token-level word matcher with a multi-strategy per-entry composite score;
// composite scores are unnormalised ranking signals, deliberately never
// clamped to [0, 1].
package match

import (
	"strings"

	"github.com/rlukassa/simpanan-backend-1/pkg/similarity"
)

// DefaultFuzzyThreshold is the minimum combined fuzzy score for a token to
// count as matched.
const DefaultFuzzyThreshold = 0.5

// MatchType tags which strategy matched a token.
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchFuzzy MatchType = "fuzzy"
)

// WordMatch records how one query token was matched.
type WordMatch struct {
	QueryWord   string
	MatchedWord string
	Type        MatchType
	Score       float64
}

// cleanWord lowercases and strips non-alphanumerics.
func cleanWord(w string) string {
	var b strings.Builder
	b.Grow(len(w))
	for _, r := range strings.ToLower(w) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// bestFuzzyMatch finds the content token most similar to queryWord. Words
// shorter than two characters after cleaning are ineligible.
func bestFuzzyMatch(queryWord string, contentTokens []string, threshold float64) (WordMatch, bool) {
	queryClean := cleanWord(queryWord)
	if len(queryClean) < 2 {
		return WordMatch{}, false
	}
	best := WordMatch{QueryWord: queryWord, Type: MatchFuzzy}
	for _, token := range contentTokens {
		tokenClean := cleanWord(token)
		if len(tokenClean) < 2 {
			continue
		}
		sim := similarity.Combined(queryClean, tokenClean)
		if sim >= threshold && sim > best.Score {
			best.MatchedWord = token
			best.Score = sim
		}
	}
	return best, best.MatchedWord != ""
}

// MatchWords matches each query token against the content tokens: exact
// (case- and punctuation-insensitive) first, then the best fuzzy candidate
// above the threshold. The returned score weights exact hits at 0.9 and
// fuzzy hits at 0.8 of their ratios; it is a ranking signal and may exceed
// 1.0. An empty query scores 0.
func MatchWords(queryTokens, contentTokens []string, fuzzyThreshold float64) (float64, []WordMatch) {
	if len(queryTokens) == 0 {
		return 0, nil
	}

	exactCount := 0
	totalFuzzy := 0.0
	var trace []WordMatch

	for _, queryWord := range queryTokens {
		queryClean := cleanWord(queryWord)

		exactFound := false
		for _, token := range contentTokens {
			if strings.EqualFold(queryWord, token) || queryClean == cleanWord(token) {
				exactCount++
				trace = append(trace, WordMatch{
					QueryWord:   queryWord,
					MatchedWord: token,
					Type:        MatchExact,
					Score:       1.0,
				})
				exactFound = true
				break
			}
		}
		if exactFound {
			continue
		}

		if best, ok := bestFuzzyMatch(queryWord, contentTokens, fuzzyThreshold); ok {
			totalFuzzy += best.Score
			trace = append(trace, best)
		}
	}

	total := float64(len(queryTokens))
	exactRatio := float64(exactCount) / total
	fuzzyRatio := totalFuzzy / total
	return exactRatio*0.9 + fuzzyRatio*0.8, trace
}

// countTypes tallies a trace by match type.
func countTypes(trace []WordMatch) (exact, fuzzy int) {
	for _, m := range trace {
		switch m.Type {
		case MatchExact:
			exact++
		case MatchFuzzy:
			fuzzy++
		}
	}
	return exact, fuzzy
}
