package semantic

import "context"

// RemoteSearcher adapts a VectorStore to the scorer's vector strategy.
// Queries are vectorised with the same fitted vectorizer the stored entry
// vectors were built with.
type RemoteSearcher struct {
	store      *VectorStore
	vectorizer *Vectorizer
	topK       int
}

// NewRemoteSearcher wires a store and vectorizer into a searcher. topK
// bounds how many hits are fetched per query.
func NewRemoteSearcher(store *VectorStore, vectorizer *Vectorizer, topK int) *RemoteSearcher {
	if topK <= 0 {
		topK = 10
	}
	return &RemoteSearcher{store: store, vectorizer: vectorizer, topK: topK}
}

// Scores returns cosine similarities keyed by corpus entry index. Hits
// whose payload lacks an entry index are dropped.
func (r *RemoteSearcher) Scores(ctx context.Context, query string) (map[int]float64, error) {
	hits, err := r.store.Search(ctx, r.vectorizer.Vector(query), r.topK)
	if err != nil {
		return nil, err
	}

	scores := make(map[int]float64, len(hits))
	for _, h := range hits {
		if h.EntryIndex >= 0 && h.Score > 0 {
			scores[h.EntryIndex] = float64(h.Score)
		}
	}
	return scores, nil
}
