package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"networkingbude/internal/domain"
)

const (
	defaultMaxPageBytes = 2 << 20
	defaultFetchTimeout = 20 * time.Second
	userAgent           = "networkingbude-autofill/1.0 (+https://networkingbude.com)"
)

type pageScraper struct {
	client   *http.Client
	maxBytes int64
	logger   *slog.Logger
}

// NewPageScraper returns an EventPageScraper that downloads pages with client
// and extracts the first event they describe. A nil client gets a client with a 20s timeout.
func NewPageScraper(client *http.Client, logger *slog.Logger) domain.EventPageScraper {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &pageScraper{client: client, maxBytes: defaultMaxPageBytes, logger: logger}
}

func (s *pageScraper) Scrape(ctx context.Context, pageURL string) (*domain.ScrapedEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		return nil, fmt.Errorf("page exceeds %d bytes", s.maxBytes)
	}

	ev, err := ParseEventPage(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "event page scraped", "url", pageURL, "title", ev.Title)
	return ev, nil
}
