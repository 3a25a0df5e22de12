// Package semantic provides TF-IDF vectorisation of corpus entries and
// cosine retrieval over them, either in process or against a Qdrant
// collection. It backs the scorer's optional vector strategy.
package semantic

import (
	"math"
	"strings"

	"github.com/rlukassa/simpanan-backend-1/pkg/textnorm"
)

// Vectorizer maps normalised text to L2-normalised TF-IDF vectors over a
// vocabulary fixed at fit time. Immutable after NewVectorizer.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// NewVectorizer fits a vocabulary and smoothed IDF weights on the given
// documents. Documents are normalised with the same pipeline the corpus
// uses, so query vectors and entry vectors live in the same space.
func NewVectorizer(docs []string) *Vectorizer {
	v := &Vectorizer{vocab: make(map[string]int)}

	df := make(map[int]int)
	for _, doc := range docs {
		seen := make(map[int]bool)
		for _, tok := range tokenize(doc) {
			id, ok := v.vocab[tok]
			if !ok {
				id = len(v.vocab)
				v.vocab[tok] = id
			}
			if !seen[id] {
				seen[id] = true
				df[id]++
			}
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(v.vocab))
	for id := range v.idf {
		v.idf[id] = math.Log((1+n)/(1+float64(df[id]))) + 1
	}
	return v
}

// Dims returns the vocabulary size.
func (v *Vectorizer) Dims() int { return len(v.vocab) }

// Vector transforms text into a dense L2-normalised TF-IDF vector.
// Out-of-vocabulary tokens are dropped; a text with no known tokens maps
// to the zero vector.
func (v *Vectorizer) Vector(text string) []float32 {
	vec := make([]float32, len(v.vocab))

	counts := make(map[int]int)
	for _, tok := range tokenize(text) {
		if id, ok := v.vocab[tok]; ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return vec
	}

	var norm float64
	for id, tf := range counts {
		w := float64(tf) * v.idf[id]
		vec[id] = float32(w)
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for id := range counts {
		vec[id] = float32(float64(vec[id]) / norm)
	}
	return vec
}

// tokenize runs the shared normalisation pipeline and splits on whitespace.
func tokenize(text string) []string {
	return strings.Fields(textnorm.Normalize(text))
}
