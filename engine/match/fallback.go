package match

import (
	"strings"

	"github.com/rlukassa/simpanan-backend-1/engine/corpus"
)

// fallbackIntent is a last-resort pattern → canned answer pair used when no
// corpus entry scores at all.
type fallbackIntent struct {
	intent  string
	pattern string
	answer  string
}

var fallbackIntents = []fallbackIntent{
	{
		intent:  "info_program_studi",
		pattern: "jurusan",
		answer:  "ITB memiliki beberapa jurusan seperti Teknik Informatika, Arsitektur, Teknik Sipil, dan banyak lagi.",
	},
	{
		intent:  "info_fakultas",
		pattern: "fakultas",
		answer:  "ITB memiliki 12 fakultas dan sekolah, antara lain STEI, FTSL, SITH, FMIPA, dll.",
	},
	{
		intent:  "info_itb",
		pattern: "itb",
		answer:  "ITB (Institut Teknologi Bandung) adalah perguruan tinggi teknik terkemuka di Indonesia yang didirikan pada tahun 1959.",
	},
	{
		intent:  "info_itb",
		pattern: "institut teknologi bandung",
		answer:  "ITB (Institut Teknologi Bandung) adalah perguruan tinggi teknik terkemuka di Indonesia yang didirikan pada tahun 1959.",
	},
}

// fallbackAnswer matches the query against the fallback intent table:
// substring first, then word-set Jaccard above 0.3.
func (s *Scorer) fallbackAnswer(query string) (string, bool) {
	queryLower := strings.ToLower(query)

	for _, item := range fallbackIntents {
		if strings.Contains(queryLower, item.pattern) {
			return item.answer, true
		}
	}
	for _, item := range fallbackIntents {
		if jaccard(item.pattern, queryLower) > 0.3 {
			return item.answer, true
		}
	}
	return "", false
}

// shortContentLimit marks content likely to be a bare navigation fragment.
const shortContentLimit = 30

// enhance prefixes entry content by source when it is short or lacks a
// self-identifying phrase, so navigation fragments do not leak through as
// orphaned answers. Output always ends with a period.
func enhance(entry corpus.Entry) string {
	content := strings.TrimSpace(entry.Content)

	switch sourceBase(entry.Source) {
	case "tentangITB":
		if len(content) < shortContentLimit {
			content = "ITB menyediakan informasi tentang " + strings.ToLower(content) +
				". Untuk informasi lebih detail, Anda dapat mengunjungi website resmi ITB"
		}
	case "wikipediaITB":
		if !strings.Contains(entry.ContentLower, "itb") &&
			!strings.Contains(entry.ContentLower, "institut teknologi bandung") {
			content = "Menurut Wikipedia, " + content
		}
	case "multikampusITB":
		if len(content) < shortContentLimit {
			content = "ITB memiliki sistem multikampus dengan " + strings.ToLower(content) +
				". Informasi lebih lanjut tersedia di portal ITB"
		}
	}

	content = strings.TrimSpace(content)
	if !strings.HasSuffix(content, ".") {
		content += "."
	}
	return content
}

// sourceBase strips any ":detail" suffix from a source tag.
func sourceBase(source string) string {
	if i := strings.IndexByte(source, ':'); i >= 0 {
		return source[:i]
	}
	return source
}
