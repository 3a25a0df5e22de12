package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><head><title>Tentang ITB</title>
<script>var x = "ignore me entirely";</script>
<style>.nav { color: red }</style></head>
<body>
<nav><a href="https://itb.ac.id/kontak">Kontak</a>Menu yang harus dibuang</nav>
<h1>Tentang ITB</h1>
<p>Institut Teknologi Bandung adalah perguruan tinggi negeri di Bandung.</p>
<p>ITB memiliki 12 fakultas dan sekolah.</p>
<p>x</p>
<a href="https://itb.ac.id/fakultas">Daftar fakultas</a>
<a href="https://itb.ac.id/fakultas">duplikat</a>
<a href="/relative">relatif</a>
</body></html>`

func TestFetch_ExtractsBlocksAndLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	s := New(nil, slog.Default())
	result := s.Fetch(context.Background(), SeedSource{Name: "tentangITB", URL: srv.URL})
	records, err := result.Unwrap()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	var contents []string
	for _, rec := range records {
		assert.Equal(t, "tentangITB", rec.Source)
		assert.Equal(t, srv.URL, rec.URL)
		assert.False(t, rec.ScrapedAt.IsZero())
		contents = append(contents, rec.Content)
	}
	assert.Contains(t, contents, "Institut Teknologi Bandung adalah perguruan tinggi negeri di Bandung.")
	assert.Contains(t, contents, "ITB memiliki 12 fakultas dan sekolah.")
	// Script bodies and sub-minimum fragments never become records.
	for _, c := range contents {
		assert.NotContains(t, c, "ignore me entirely")
		assert.NotEqual(t, "x", c)
	}

	// Absolute links are mined once each; relative links are dropped.
	require.NotEmpty(t, records[0].Links)
	assert.Equal(t, []string{"https://itb.ac.id/kontak", "https://itb.ac.id/fakultas"}, records[0].Links)
}

func TestFetch_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s := New(nil, slog.Default())
	result := s.Fetch(context.Background(), SeedSource{Name: "tentangITB", URL: srv.URL})
	assert.True(t, result.IsErr())
}

func TestFetchAll_SkipsFailingSeed(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<p>ITB memiliki kampus di Jatinangor dan Cirebon.</p>`))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	s := New([]SeedSource{
		{Name: "multikampusITB", URL: good.URL},
		{Name: "tentangITB", URL: bad.URL},
	}, slog.Default())

	records := s.FetchAll(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, "multikampusITB", records[0].Source)
}

func TestSplitBlocks(t *testing.T) {
	blocks := splitBlocks(`<div>satu &amp; dua</div><p>tiga</p>`)
	assert.Equal(t, []string{"satu & dua", "tiga"}, blocks)
}

func TestNew_DefaultSeeds(t *testing.T) {
	s := New(nil, nil)
	assert.Equal(t, DefaultSeeds, s.Seeds())
}
