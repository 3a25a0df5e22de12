package intent

// Rule scores one intent. MustHave concepts are all required, ShouldHave is
// a list of any-of groups, Keywords are loose surface hints. Weight scales
// the final score so broad catch-all intents lose to specific ones.
type Rule struct {
	Name       string
	MustHave   []string
	ShouldHave [][]string
	Keywords   []string
	Weight     float64
}

// rules is ordered: on equal scores the earlier rule wins, so the specific
// intents are declared before the catch-all.
var rules = []Rule{
	{
		Name:       "jumlah_fakultas",
		MustHave:   []string{"faculty"},
		ShouldHave: [][]string{{"what", "how_many"}, {"itb"}},
		Keywords:   []string{"berapa", "jumlah", "banyak", "total", "fakultas", "sekolah", "apa", "saja"},
		Weight:     1.0,
	},
	{
		Name:       "kepanjangan_itb",
		MustHave:   []string{"itb"},
		ShouldHave: [][]string{{"meaning"}, {"what"}},
		Keywords:   []string{"arti", "kepanjangan", "singkatan", "definisi", "maksud", "apaan"},
		Weight:     1.0,
	},
	{
		Name:       "lokasi_itb",
		MustHave:   []string{"itb"},
		ShouldHave: [][]string{{"where", "location"}},
		Keywords:   []string{"dimana", "lokasi", "alamat", "tempat", "berada"},
		Weight:     1.0,
	},
	{
		Name:       "sejarah_itb",
		MustHave:   []string{"itb"},
		ShouldHave: [][]string{{"history"}, {"when"}},
		Keywords:   []string{"sejarah", "riwayat", "didirikan", "berdiri", "kapan", "tahun", "asal"},
		Weight:     1.0,
	},
	{
		Name:     "info_umum_itb",
		MustHave: []string{"itb"},
		Keywords: []string{"tentang", "info", "informasi", "cerita", "jelasin"},
		Weight:   0.7,
	},
}

// answers holds the hand-authored answer per intent.
var answers = map[string]string{
	"jumlah_fakultas": "ITB memiliki 12 fakultas dan sekolah, yaitu FMIPA, SITH, SF, FITB, FTTM, STEI, FTSL, FTI, FTMD, FSRD, SBM, dan SAPPK.",
	"kepanjangan_itb": "ITB adalah singkatan dari Institut Teknologi Bandung, perguruan tinggi negeri yang berfokus pada sains, teknologi, dan seni.",
	"lokasi_itb":      "Kampus utama ITB berlokasi di Jalan Ganesa No. 10, Bandung, Jawa Barat. ITB juga memiliki kampus di Jatinangor dan Cirebon.",
	"sejarah_itb":     "ITB diresmikan pada 2 Maret 1959. Akar sejarahnya adalah Technische Hoogeschool te Bandoeng (TH Bandung) yang berdiri tahun 1920.",
	"info_umum_itb":   "Institut Teknologi Bandung (ITB) adalah perguruan tinggi teknik tertua di Indonesia dengan 12 fakultas dan sekolah serta sistem multikampus.",
}

// intentCategories maps an intent to the corpus categories worth mining for
// supporting links.
var intentCategories = map[string]map[string]bool{
	"jumlah_fakultas": {"akademik": true, "fakultas": true},
	"kepanjangan_itb": {"umum": true, "profil": true},
	"lokasi_itb":      {"lokasi": true, "kampus": true},
	"sejarah_itb":     {"sejarah": true, "umum": true},
	"info_umum_itb":   {"umum": true, "akademik": true, "profil": true},
}

// Answer returns the canned answer for an intent.
func Answer(intent string) (string, bool) {
	answer, ok := answers[intent]
	return answer, ok
}
