package scraper

import (
	"context"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rlukassa/simpanan-backend-1/engine/domain"
	"github.com/rlukassa/simpanan-backend-1/pkg/fn"
)

const (
	userAgent   = "simpanan-scraper/1.0"
	maxBodySize = 4 << 20
)

var (
	blockBreak = regexp.MustCompile(`(?i)</(?:p|div|li|h[1-6]|tr|section|article)>|<br\s*/?>`)
	dropBlocks = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>|<style[^>]*>.*?</style>|<nav[^>]*>.*?</nav>|<header[^>]*>.*?</header>|<footer[^>]*>.*?</footer>|<noscript[^>]*>.*?</noscript>`)
	tags       = regexp.MustCompile(`<[^>]*>`)
	hrefs      = regexp.MustCompile(`href="(https?://[^"]+)"`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// Scraper harvests seed pages into raw records. Requests share one rate
// limiter so bursts never hammer the institutional servers.
type Scraper struct {
	seeds      []SeedSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New creates a Scraper. Empty seeds fall back to DefaultSeeds.
func New(seeds []SeedSource, logger *slog.Logger) *Scraper {
	if len(seeds) == 0 {
		seeds = DefaultSeeds
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		seeds:      seeds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		logger:     logger,
	}
}

// FetchAll harvests every seed concurrently and returns all records. A
// failing seed is logged and skipped so one dead page never aborts a run.
func (s *Scraper) FetchAll(ctx context.Context) []domain.ScrapedRecord {
	var all []domain.ScrapedRecord
	for i, r := range fn.ParMapResult(s.seeds, len(s.seeds), func(seed SeedSource) fn.Result[[]domain.ScrapedRecord] {
		return s.Fetch(ctx, seed)
	}) {
		records, err := r.Unwrap()
		if err != nil {
			s.logger.Warn("seed skipped", "seed", s.seeds[i].Name, "err", err)
			continue
		}
		all = append(all, records...)
	}
	return all
}

// Fetch harvests one seed page into records, one per text block that
// passes domain validation.
func (s *Scraper) Fetch(ctx context.Context, seed SeedSource) fn.Result[[]domain.ScrapedRecord] {
	if err := s.limiter.Wait(ctx); err != nil {
		return fn.Err[[]domain.ScrapedRecord](err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, seed.URL, nil)
	if err != nil {
		return fn.Errf[[]domain.ScrapedRecord]("scraper: build request %s: %w", seed.URL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fn.Errf[[]domain.ScrapedRecord]("scraper: fetch %s: %w", seed.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fn.Errf[[]domain.ScrapedRecord]("scraper: fetch %s: status %d", seed.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fn.Errf[[]domain.ScrapedRecord]("scraper: read %s: %w", seed.URL, err)
	}

	records := s.extract(seed, string(body))
	s.logger.Info("seed harvested", "seed", seed.Name, "records", len(records))
	return fn.Ok(records)
}

// extract splits an HTML page into cleaned text blocks and builds a record
// per block. Links found anywhere on the page are attached to every record
// of that page.
func (s *Scraper) extract(seed SeedSource, page string) []domain.ScrapedRecord {
	links := extractLinks(page)
	now := time.Now().UTC()

	var records []domain.ScrapedRecord
	for _, block := range splitBlocks(page) {
		rec := domain.ScrapedRecord{
			Source:    seed.Name,
			Content:   block,
			URL:       seed.URL,
			Links:     links,
			ScrapedAt: now,
		}
		if err := domain.ValidateScrapedRecord(rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// splitBlocks strips markup and returns cleaned text blocks.
func splitBlocks(page string) []string {
	page = dropBlocks.ReplaceAllString(page, " ")
	page = blockBreak.ReplaceAllString(page, "\n")
	page = tags.ReplaceAllString(page, " ")
	page = html.UnescapeString(page)

	var blocks []string
	for _, line := range strings.Split(page, "\n") {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		if line != "" {
			blocks = append(blocks, line)
		}
	}
	return blocks
}

// extractLinks returns the absolute http(s) links on a page, deduplicated
// in document order.
func extractLinks(page string) []string {
	var links []string
	seen := make(map[string]bool)
	for _, m := range hrefs.FindAllStringSubmatch(page, -1) {
		u := m[1]
		if seen[u] {
			continue
		}
		seen[u] = true
		links = append(links, u)
	}
	return links
}

// Seeds returns the configured seed list.
func (s *Scraper) Seeds() []SeedSource { return s.seeds }
