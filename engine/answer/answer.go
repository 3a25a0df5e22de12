// Package answer orchestrates the question-answering pipeline. It accepts
// a user question, runs intent classification first, falls back to corpus
// matching on both the raw and normalised query, and finally serves a
// fixed apology so the caller always gets an answer.
package answer

import (
	"context"
	"log/slog"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
	"github.com/rlukassa/simpanan-backend-1/engine/domain"
	"github.com/rlukassa/simpanan-backend-1/engine/intent"
	"github.com/rlukassa/simpanan-backend-1/engine/match"
	"github.com/rlukassa/simpanan-backend-1/pkg/textnorm"
)

// fallbackAnswer is the terminal response when nothing else matched.
const fallbackAnswer = "Maaf, belum bisa jawab. Coba kata kunci lain seperti 'fakultas', 'jurusan', 'akreditas'."

// Options configures the answering pipeline.
type Options struct {
	// ConfidenceThreshold gates the intent path. Classifications below it
	// fall through to corpus matching.
	ConfidenceThreshold float64
	// LinkTopK bounds how many corpus entries are mined for links on the
	// intent path.
	LinkTopK int
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() Options {
	return Options{ConfidenceThreshold: 0.5, LinkTopK: 3}
}

// Service is the answering orchestrator. It holds only read-only state and
// is safe for concurrent use.
type Service struct {
	classifier *intent.Classifier
	scorer     *match.Scorer
	corpus     *corpus.Corpus
	opts       Options
	logger     *slog.Logger
}

// New creates a Service over an immutable corpus.
func New(c *corpus.Corpus, classifier *intent.Classifier, scorer *match.Scorer, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		classifier: classifier,
		scorer:     scorer,
		corpus:     c,
		opts:       opts,
		logger:     logger,
	}
}

// AnswerQuery answers one question. It never returns an empty answer: the
// pipeline terminates in a fixed fallback response.
func (s *Service) AnswerQuery(ctx context.Context, question string) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		OriginalQuery:   question,
		NormalizedQuery: textnorm.Normalize(question),
	}

	// Path 1: rule-based intent classification.
	cls := s.classifier.Classify(question)
	if cls.Confidence >= s.opts.ConfidenceThreshold {
		if answer, ok := intent.Answer(cls.Intent); ok {
			result.Intent = cls.Intent
			result.Confidence = cls.Confidence
			result.Answer = answer
			result.Source = domain.SourceIntent
			result.Links = s.classifier.FindLinks(s.corpus, question, cls.Intent, s.opts.LinkTopK)
			s.logger.Info("answered by intent",
				"intent", cls.Intent,
				"confidence", cls.Confidence,
				"links", len(result.Links),
			)
			return result
		}
	}

	// Path 2: corpus matching, raw query first so typo information
	// survives, then the normalised form.
	if answer, ok := s.scorer.FindBestMatch(ctx, question); ok {
		result.Answer = answer
		result.Source = domain.SourceCorpus
		s.logger.Info("answered by corpus", "query", question)
		return result
	}
	if result.NormalizedQuery != "" {
		if answer, ok := s.scorer.FindBestMatch(ctx, result.NormalizedQuery); ok {
			result.Answer = answer
			result.Source = domain.SourceCorpus
			s.logger.Info("answered by corpus on normalized query", "query", result.NormalizedQuery)
			return result
		}
	}

	// Path 3: fixed apology.
	result.Answer = fallbackAnswer
	result.Source = domain.SourceFallback
	s.logger.Info("answered by fallback", "query", question)
	return result
}
