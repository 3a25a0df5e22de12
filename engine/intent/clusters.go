// Package intent classifies Indonesian queries into known intents with
// hand-authored answers. Classification is rule based: each intent names
// required and optional semantic concepts plus a keyword list, and every
// concept is backed by a cluster of synonymous surface forms.
package intent

// conceptClusters maps a concept name to its synonymous surface forms.
// Detection is by substring presence in the processed query, with a fuzzy
// fallback for typos.
var conceptClusters = map[string][]string{
	// Question words.
	"what":     {"apa", "apakah", "gimana", "bagaimana", "seperti apa", "macam apa"},
	"where":    {"dimana", "di mana", "lokasi", "alamat", "tempat", "berada", "terletak"},
	"when":     {"kapan", "tanggal", "tahun", "waktu", "masa"},
	"how_many": {"berapa", "jumlah", "banyak", "total", "ada berapa"},
	"why":      {"kenapa", "mengapa", "alasan", "sebab"},
	"who":      {"siapa", "tokoh"},

	// Entities.
	"itb":      {"itb", "institut teknologi bandung", "institute", "teknologi bandung", "institut"},
	"faculty":  {"fakultas", "sekolah", "jurusan", "program studi", "prodi", "departemen"},
	"history":  {"sejarah", "riwayat", "asal usul", "latar belakang", "berdiri", "didirikan", "dibentuk"},
	"meaning":  {"arti", "makna", "definisi", "pengertian", "maksud", "kepanjangan", "singkatan"},
	"location": {"lokasi", "alamat", "tempat", "posisi", "koordinat", "letak"},
}

// typoCorrections rewrites frequent informal spellings before feature
// extraction.
var typoCorrections = map[string]string{
	"gimana": "bagaimana",
	"apaan":  "apa",
	"dimana": "di mana",
	"napa":   "apa",
	"gmana":  "bagaimana",
}

// ClusterWords returns the surface forms backing a concept, or nil for an
// unknown concept.
func ClusterWords(concept string) []string {
	return conceptClusters[concept]
}
