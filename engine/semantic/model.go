package semantic

// SearchResult is a single vector search hit from the remote store.
type SearchResult struct {
	ID         string  `json:"id"`
	Score      float32 `json:"score"`
	RecordID   string  `json:"record_id"`
	Source     string  `json:"source"`
	Category   string  `json:"category"`
	Content    string  `json:"content"`
	EntryIndex int     `json:"entry_index"`
}

// VectorRecord is a single vector to store remotely. Payload carries
// record_id, source, category, content, and entry_index. Points are keyed
// by ID when set, otherwise by NumID; numeric keys let a corpus sync
// overwrite points in place across restarts.
type VectorRecord struct {
	ID        string
	NumID     uint64
	Embedding []float32
	Payload   map[string]any
}
