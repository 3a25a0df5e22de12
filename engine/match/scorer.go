package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/pkg/textnorm"
)

// Strategy is one scored signal in a candidate's breakdown.
type Strategy struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Candidate pairs a corpus entry with its accumulated composite score.
// Score is an unnormalised weighted sum used only for ranking.
type Candidate struct {
	Entry   corpus.Entry
	Score   float64
	Methods []Strategy
}

// VectorSearcher is an optional vectorised retrieval strategy (TF-IDF
// cosine). A nil searcher means the strategy is cleanly skipped; it then
// never appears in any score breakdown.
type VectorSearcher interface {
	// Scores returns cosine similarities per corpus entry index.
	Scores(ctx context.Context, query string) (map[int]float64, error)
}

// Options tunes the corpus scorer.
type Options struct {
	// Threshold gates the Jaccard strategy.
	Threshold float64
	// TopK bounds how many candidates may be stitched into one answer.
	TopK int
	// FuzzyThreshold gates per-token fuzzy matching.
	FuzzyThreshold float64
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() Options {
	return Options{Threshold: 0.3, TopK: 3, FuzzyThreshold: DefaultFuzzyThreshold}
}

// Scorer ranks corpus entries against queries. It holds only read-only
// state and is safe for concurrent use.
type Scorer struct {
	corpus  *corpus.Corpus
	vectors VectorSearcher
	opts    Options
	logger  *slog.Logger
}

// NewScorer creates a Scorer over an immutable corpus. vectors may be nil.
func NewScorer(c *corpus.Corpus, vectors VectorSearcher, opts Options, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{corpus: c, vectors: vectors, opts: opts, logger: logger}
}

// Candidates scores every corpus entry against the query and returns the
// positive-scoring ones, best first. Ties keep corpus order.
func (s *Scorer) Candidates(ctx context.Context, query string) []Candidate {
	queryLower := strings.ToLower(query)
	queryNorm := textnorm.Normalize(query)

	rawTokens := tokensOver(queryLower, 1)
	normTokens := tokensOver(queryNorm, 1)
	querySet := wordSet(queryLower)

	var vectorScores map[int]float64
	if s.vectors != nil {
		scores, err := s.vectors.Scores(ctx, query)
		if err != nil {
			s.logger.Warn("vector strategy skipped", "err", err)
		} else {
			vectorScores = scores
		}
	}

	var candidates []Candidate
	for i, entry := range s.corpus.Entries() {
		cand := Candidate{Entry: entry}

		// Strategy 1: exact substring containment.
		if queryLower != "" && strings.Contains(entry.ContentLower, queryLower) {
			cand.add("substring", 1.0, 1.0)
		}

		// Strategy 2: word matching on the raw query, which keeps typo
		// information the normaliser would destroy.
		wordScore, trace := MatchWords(rawTokens, entry.RawTokens, s.opts.FuzzyThreshold)
		if wordScore > 0 {
			exact, fuzzy := countTypes(trace)
			cand.add(fmt.Sprintf("word_match(exact:%d,fuzzy:%d)", exact, fuzzy), wordScore, 0.9)
			if fuzzy > 0 {
				cand.add("typo_bonus", float64(fuzzy), 0.3)
				s.logger.Debug("fuzzy word matches", "query", query, "pairs", tracePairs(trace))
			}
		} else if len(normTokens) > 0 {
			// Strategy 3: normalised fallback at a lower weight.
			fallbackScore, _ := MatchWords(normTokens, entry.NormTokens, s.opts.FuzzyThreshold)
			if fallbackScore > 0 {
				cand.add("normalized_fallback", fallbackScore, 0.7)
			}
		}

		// Strategy 4: Jaccard on the normalised texts.
		if j := jaccard(queryNorm, entry.Normalized); j > s.opts.Threshold {
			cand.add("jaccard", j, 0.5)
		}

		// Strategy 5: raw token-set overlap.
		if len(querySet) > 0 {
			contentSet := wordSet(entry.ContentLower)
			overlap := 0
			for w := range querySet {
				if _, ok := contentSet[w]; ok {
					overlap++
				}
			}
			if overlap > 0 {
				cand.add("overlap", float64(overlap)/float64(len(querySet)), 0.3)
			}
		}

		// Strategy 6: one high-confidence fuzzy token as a final sweep,
		// first qualifying token only so entries are not double-counted.
		for _, queryWord := range rawTokens {
			if best, ok := bestFuzzyMatch(queryWord, entry.RawTokens, s.opts.FuzzyThreshold); ok && best.Score > 0.7 {
				cand.add("fallback_fuzzy", best.Score, 0.4)
				break
			}
		}

		// Optional vectorised strategy.
		if sim, ok := vectorScores[i]; ok && sim > 0 {
			cand.add("tfidf", sim, 0.4)
		}

		if cand.Score > 0 {
			candidates = append(candidates, cand)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})
	return candidates
}

// add accumulates a weighted strategy score into the candidate.
func (c *Candidate) add(name string, score, weight float64) {
	weighted := score * weight
	c.Score += weighted
	c.Methods = append(c.Methods, Strategy{Name: name, Score: weighted})
}

// FindBestMatch returns the formatted best answer for the query, or false
// when neither the corpus nor the fallback intent table matches. Callers
// own the final user-facing "not found" message.
func (s *Scorer) FindBestMatch(ctx context.Context, query string) (string, bool) {
	candidates := s.Candidates(ctx, query)
	if len(candidates) == 0 {
		s.logger.Info("no corpus candidates, trying fallback intents", "query", query)
		return s.fallbackAnswer(query)
	}

	best := candidates[0]
	s.logger.Info("best corpus match",
		"score", best.Score,
		"source", best.Entry.Source,
		"methods", len(best.Methods),
	)

	topK := s.opts.TopK
	if topK > len(candidates) {
		topK = len(candidates)
	}
	return s.formatAnswer(candidates[:topK]), true
}

// formatAnswer renders the top candidate, stitching in up to two more when
// the main answer is too short to stand alone. Answers always end with a
// period.
func (s *Scorer) formatAnswer(candidates []Candidate) string {
	answer := enhance(candidates[0].Entry)

	if len(answer) < 80 && len(candidates) > 1 {
		extra := candidates[1:]
		if len(extra) > 2 {
			extra = extra[:2]
		}
		for _, cand := range extra {
			more := enhance(cand.Entry)
			if len(more) > 20 && !strings.Contains(answer, more) {
				answer += " " + more
			}
		}
	}

	answer = strings.TrimSpace(answer)
	if !strings.HasSuffix(answer, ".") {
		answer += "."
	}
	return answer
}

// tracePairs renders fuzzy matches as "query->matched" strings for logging.
func tracePairs(trace []WordMatch) []string {
	var pairs []string
	for _, m := range trace {
		if m.Type == MatchFuzzy {
			pairs = append(pairs, m.QueryWord+"->"+m.MatchedWord)
		}
	}
	return pairs
}

// tokensOver splits on whitespace keeping tokens longer than minLen.
func tokensOver(text string, minLen int) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > minLen {
			out = append(out, f)
		}
	}
	return out
}

// wordSet returns the set of whitespace tokens.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range strings.Fields(text) {
		set[f] = struct{}{}
	}
	return set
}

// jaccard computes word-set Jaccard similarity between two texts.
func jaccard(a, b string) float64 {
	setA, setB := wordSet(a), wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
