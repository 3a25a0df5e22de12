package intent

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/rlukassa/simpanan-backend-1/pkg/similarity"
)

// Fuzzy acceptance thresholds. Optional concepts tolerate noisier matches
// than required ones.
const (
	mustFuzzyThreshold    = 0.7
	shouldFuzzyThreshold  = 0.6
	keywordFuzzyThreshold = 0.7
)

// ScoreBreakdown exposes the per-component scores behind a classification.
type ScoreBreakdown struct {
	MustHave float64 `json:"must_have"`
	Should   float64 `json:"should_have"`
	Keyword  float64 `json:"keyword"`
	Final    float64 `json:"final"`
}

// Classification is the result of classifying one query.
type Classification struct {
	Intent         string
	Confidence     float64
	ProcessedQuery string
	Breakdown      map[string]ScoreBreakdown
}

// Classifier scores queries against the static rule table. It holds only
// read-only state and is safe for concurrent use.
type Classifier struct {
	logger *slog.Logger
}

// NewClassifier returns a classifier over the built-in rule table.
func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// Classify scores every rule against the query and returns the winner with
// its confidence. Ties go to the earlier rule. A query matching nothing
// comes back with an empty intent and zero confidence.
func (c *Classifier) Classify(query string) Classification {
	processed := preprocessQuery(query)
	result := Classification{
		ProcessedQuery: processed,
		Breakdown:      make(map[string]ScoreBreakdown, len(rules)),
	}
	if processed == "" {
		return result
	}

	words := strings.Fields(processed)
	for _, rule := range rules {
		breakdown := scoreRule(rule, processed, words)
		result.Breakdown[rule.Name] = breakdown
		if breakdown.Final > result.Confidence {
			result.Intent = rule.Name
			result.Confidence = breakdown.Final
		}
	}

	c.logger.Debug("intent classified",
		"query", query,
		"processed", processed,
		"intent", result.Intent,
		"confidence", result.Confidence,
	)
	return result
}

// scoreRule computes the weighted component scores of one rule.
func scoreRule(rule Rule, processed string, words []string) ScoreBreakdown {
	var b ScoreBreakdown

	// Required concepts: all are averaged, a fuzzy hit counts at its
	// similarity rather than a flat 1.0.
	if len(rule.MustHave) == 0 {
		b.MustHave = 1.0
	} else {
		var sum float64
		for _, concept := range rule.MustHave {
			sum += conceptScore(concept, processed, words, mustFuzzyThreshold)
		}
		b.MustHave = sum / float64(len(rule.MustHave))
	}

	// Optional concept groups: each group contributes its best concept.
	if len(rule.ShouldHave) > 0 {
		var sum float64
		for _, group := range rule.ShouldHave {
			var best float64
			for _, concept := range group {
				if s := conceptScore(concept, processed, words, shouldFuzzyThreshold); s > best {
					best = s
				}
			}
			sum += best
		}
		b.Should = sum / float64(len(rule.ShouldHave))
	}

	if len(rule.Keywords) > 0 {
		var sum float64
		for _, keyword := range rule.Keywords {
			if strings.Contains(processed, keyword) {
				sum += 1.0
				continue
			}
			if best := bestWordSimilarity(keyword, words); best > keywordFuzzyThreshold {
				sum += best
			}
		}
		b.Keyword = sum / float64(len(rule.Keywords))
	}

	b.Final = (b.MustHave*0.5 + b.Should*0.3 + b.Keyword*0.2) * rule.Weight
	return b
}

// conceptScore checks a concept against the query: substring presence of
// any cluster form scores 1.0, otherwise the best fuzzy similarity above
// the threshold.
func conceptScore(concept, processed string, words []string, threshold float64) float64 {
	var best float64
	for _, form := range conceptClusters[concept] {
		if strings.Contains(processed, form) {
			return 1.0
		}
		if sim := bestWordSimilarity(form, words); sim > threshold && sim > best {
			best = sim
		}
	}
	return best
}

// bestWordSimilarity returns the highest combined similarity between the
// target and any query word.
func bestWordSimilarity(target string, words []string) float64 {
	var best float64
	for _, w := range words {
		if sim := similarity.Combined(target, w); sim > best {
			best = sim
		}
	}
	return best
}

// preprocessQuery lowercases, rewrites known informal spellings, strips
// punctuation, and collapses whitespace. Stopwords are kept: question words
// carry the intent signal here.
func preprocessQuery(query string) string {
	lower := strings.ToLower(strings.TrimSpace(query))

	words := strings.Fields(lower)
	for i, w := range words {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if fixed, ok := typoCorrections[trimmed]; ok {
			words[i] = fixed
		} else {
			words[i] = w
		}
	}

	var sb strings.Builder
	for _, r := range strings.Join(words, " ") {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
