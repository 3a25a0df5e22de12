package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// categoryKeywords assigns a category by first keyword hit, checked in
// categoryOrder. Content matching nothing falls back to "umum".
var categoryKeywords = map[string][]string{
	"pendaftaran": {"pendaftaran", "snbp", "snbt", "seleksi", "penerimaan", "admisi"},
	"sejarah":     {"sejarah", "didirikan", "berdiri", "riwayat", "diresmikan", "1920", "1959"},
	"akademik":    {"fakultas", "sekolah", "jurusan", "program studi", "prodi", "kurikulum", "akreditasi"},
	"lokasi":      {"lokasi", "alamat", "jatinangor", "cirebon", "ganesa", "multikampus", "terletak"},
	"fasilitas":   {"perpustakaan", "laboratorium", "asrama", "fasilitas", "gedung"},
}

var categoryOrder = []string{"pendaftaran", "sejarah", "akademik", "lokasi", "fasilitas"}

// DefaultCategory is used when no keyword matches.
const DefaultCategory = "umum"

var multiSpace = regexp.MustCompile(`\s+`)

// cleanContent collapses whitespace and strips control characters. The
// text itself is preserved; casing and punctuation stay intact for the
// corpus matcher.
func cleanContent(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(sb.String(), " "))
}

// categorize assigns the first category whose keywords hit the content.
func categorize(content string) string {
	lower := strings.ToLower(content)
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return DefaultCategory
}

// qualityScore rates content on a 0-100 scale: longer, well-formed,
// institution-specific text scores higher.
func qualityScore(content string) float64 {
	score := 40.0

	length := float64(len(content))
	if bonus := length / 20; bonus > 30 {
		score += 30
	} else {
		score += bonus
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?") {
		score += 10
	}
	if len(strings.Fields(content)) >= 8 {
		score += 10
	}

	lower := strings.ToLower(content)
	if strings.Contains(lower, "itb") || strings.Contains(lower, "institut teknologi bandung") {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
