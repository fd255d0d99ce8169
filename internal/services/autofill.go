package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"networkingbude/internal/domain"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAutoFillLookahead is how far ahead of now a scraped event may start.
	DefaultAutoFillLookahead = 14 * 24 * time.Hour
	defaultScrapeConcurrency = 4
)

// AutoFillConfig tunes an auto-fill pass.
type AutoFillConfig struct {
	Lookahead   time.Duration
	Concurrency int
	ReportEmail string
	Timeout     time.Duration
}

type autoFillService struct {
	slotRepo     domain.SlotRepository
	catalog      domain.EventSourceCatalog
	scraper      domain.EventPageScraper
	emailService domain.EmailService
	cfg          AutoFillConfig
	logger       *slog.Logger
	now          func() time.Time
}

// NewAutoFillService returns an AutoFillService. emailService may be nil.
func NewAutoFillService(slotRepo domain.SlotRepository,
	catalog domain.EventSourceCatalog,
	scraper domain.EventPageScraper,
	emailService domain.EmailService,
	cfg AutoFillConfig,
	logger *slog.Logger,
) domain.AutoFillService {
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = DefaultAutoFillLookahead
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultScrapeConcurrency
	}
	return &autoFillService{
		slotRepo:     slotRepo,
		catalog:      catalog,
		scraper:      scraper,
		emailService: emailService,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

type candidate struct {
	org     string
	orgName string
	event   *domain.ScrapedEvent
}

func (s *autoFillService) AutoFill(ctx context.Context, regionID string) (*domain.AutoFillReport, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	if strings.TrimSpace(regionID) == "" {
		return nil, fmt.Errorf("region is required: %w", domain.ErrInvalidInput)
	}

	report := &domain.AutoFillReport{RegionID: regionID, Filled: []*domain.Slot{}, Skipped: []domain.AutoFillSkip{}}
	sources := s.catalog.SourcesForRegion(regionID)
	if len(sources) == 0 {
		return report, nil
	}

	reg := NewSlotRegistry(s.slotRepo, domain.NewScope(domain.CollectionEvents, regionID), s.logger, WithClock(s.now))
	if err := reg.Load(ctx); err != nil {
		return nil, err
	}

	scraped, err := s.scrapeAll(ctx, sources, report)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, c := range s.selectCandidates(reg, scraped, now, report) {
		n := reg.FirstEmpty()
		if n == 0 {
			report.Skipped = append(report.Skipped, domain.AutoFillSkip{URL: c.event.URL, Reason: "no empty slot"})
			continue
		}
		payload := c.event.Payload()
		if payload.Organization == "" {
			payload.Organization = c.orgName
		}
		if err := reg.Save(ctx, n, payload); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				report.Skipped = append(report.Skipped, domain.AutoFillSkip{URL: c.event.URL, Reason: verr.Error()})
				continue
			}
			return report, fmt.Errorf("auto-fill slot %d: %w", n, err)
		}
		report.Filled = append(report.Filled, reg.At(n))
	}

	s.logger.InfoContext(ctx, "auto-fill finished", "region", regionID, "filled", len(report.Filled), "skipped", len(report.Skipped))
	s.sendReport(ctx, report, now)
	return report, nil
}

// scrapeAll fetches every source with bounded concurrency. Pages that fail to
// scrape are recorded as skipped; only context cancellation aborts the pass.
func (s *autoFillService) scrapeAll(ctx context.Context, sources []domain.EventSource, report *domain.AutoFillReport) ([]candidate, error) {
	results := make([]*domain.ScrapedEvent, len(sources))
	errs := make([]error, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, src := range sources {
		g.Go(func() error {
			ev, err := s.scraper.Scrape(gctx, src.URL)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = ev
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]candidate, 0, len(sources))
	for i, src := range sources {
		if errs[i] != nil {
			s.logger.WarnContext(ctx, "scrape failed", "url", src.URL, "err", errs[i])
			report.Skipped = append(report.Skipped, domain.AutoFillSkip{URL: src.URL, Reason: errs[i].Error()})
			continue
		}
		ev := results[i]
		if ev.URL == "" {
			ev.URL = src.URL
		}
		name := strings.TrimSpace(src.Organization)
		if name == "" {
			name = strings.TrimSpace(ev.Organization)
		}
		key := organizationKey(src, ev)
		if name == "" {
			// keep the host on the row so the next pass sees the organization
			name = key
		}
		out = append(out, candidate{org: key, orgName: name, event: ev})
	}
	return out, nil
}

// selectCandidates keeps events inside the lookahead window, at most one per
// organization (the earliest), skipping organizations and pages already holding
// a slot. The result is ordered by start time, then organization, then URL.
func (s *autoFillService) selectCandidates(reg *SlotRegistry, scraped []candidate, now time.Time, report *domain.AutoFillReport) []candidate {
	takenOrgs := make(map[string]struct{})
	takenURLs := make(map[string]struct{})
	for _, slot := range reg.Snapshot().Occupied() {
		if org := normalizeOrg(slot.Payload.Organization); org != "" {
			takenOrgs[org] = struct{}{}
		}
		if slot.Payload.ExternalURL != "" {
			takenURLs[slot.Payload.ExternalURL] = struct{}{}
		}
	}

	windowEnd := now.Add(s.cfg.Lookahead)
	var inWindow []candidate
	for _, c := range scraped {
		skip := func(reason string) {
			report.Skipped = append(report.Skipped, domain.AutoFillSkip{URL: c.event.URL, Reason: reason})
		}
		switch {
		case c.event.StartsAt == nil:
			skip("no start date")
		case c.event.StartsAt.Before(now) || c.event.StartsAt.After(windowEnd):
			skip("outside lookahead window")
		case hasKey(takenURLs, c.event.URL):
			skip("already scheduled")
		case hasKey(takenOrgs, c.org):
			skip("organization already has a slot")
		default:
			inWindow = append(inWindow, c)
		}
	}

	sort.SliceStable(inWindow, func(i, j int) bool {
		a, b := inWindow[i], inWindow[j]
		if !a.event.StartsAt.Equal(*b.event.StartsAt) {
			return a.event.StartsAt.Before(*b.event.StartsAt)
		}
		if a.org != b.org {
			return a.org < b.org
		}
		return a.event.URL < b.event.URL
	})

	out := make([]candidate, 0, len(inWindow))
	for _, c := range inWindow {
		if hasKey(takenOrgs, c.org) {
			report.Skipped = append(report.Skipped, domain.AutoFillSkip{URL: c.event.URL, Reason: "organization already has an earlier event"})
			continue
		}
		takenOrgs[c.org] = struct{}{}
		out = append(out, c)
	}
	return out
}

func (s *autoFillService) sendReport(ctx context.Context, report *domain.AutoFillReport, ranAt time.Time) {
	if s.emailService == nil || s.cfg.ReportEmail == "" {
		return
	}
	data := &domain.AutoFillReportEmailData{
		Email:    s.cfg.ReportEmail,
		RegionID: report.RegionID,
		RanAt:    ranAt,
		Report:   report,
	}
	if err := s.emailService.SendAutoFillReport(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "failed to send auto-fill report", "err", err)
	}
}

// organizationKey picks the configured organization, then the scraped one, then the page host.
func organizationKey(src domain.EventSource, ev *domain.ScrapedEvent) string {
	if org := normalizeOrg(src.Organization); org != "" {
		return org
	}
	if org := normalizeOrg(ev.Organization); org != "" {
		return org
	}
	if u, err := url.Parse(src.URL); err == nil {
		return strings.ToLower(u.Hostname())
	}
	return src.URL
}

func normalizeOrg(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func hasKey(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}
