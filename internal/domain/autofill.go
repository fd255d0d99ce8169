package domain

import (
	"context"
	"time"
)

// EventSource is a page that may describe an upcoming event of an organization.
type EventSource struct {
	Organization string `yaml:"organization" json:"organization"`
	URL          string `yaml:"url" json:"url"`
}

// EventSourceCatalog returns the configured event pages of a region.
type EventSourceCatalog interface {
	SourcesForRegion(regionID string) []EventSource
}

// ScrapedEvent is the form data extracted from one event page.
type ScrapedEvent struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	Location     string     `json:"location"`
	Organization string     `json:"organization"`
	ImageURL     string     `json:"image_url"`
	URL          string     `json:"url"`
}

// Payload converts the scraped event to a slot payload.
func (e ScrapedEvent) Payload() SlotPayload {
	return SlotPayload{
		Title:        e.Title,
		Description:  e.Description,
		StartsAt:     e.StartsAt,
		EndsAt:       e.EndsAt,
		Location:     e.Location,
		Organization: e.Organization,
		ImageURL:     e.ImageURL,
		ExternalURL:  e.URL,
	}
}

// EventPageScraper fetches an event page and extracts its event fields.
type EventPageScraper interface {
	Scrape(ctx context.Context, pageURL string) (*ScrapedEvent, error)
}

// AutoFillSkip records why a source did not produce a slot.
type AutoFillSkip struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// AutoFillReport summarizes one auto-fill pass over a region.
// swagger:model AutoFillReport
type AutoFillReport struct {
	RegionID string         `json:"region_id"`
	Filled   []*Slot        `json:"filled"`
	Skipped  []AutoFillSkip `json:"skipped"`
}

// AutoFillService fills empty event slots of a region from scraped pages.
type AutoFillService interface {
	AutoFill(ctx context.Context, regionID string) (*AutoFillReport, error)
}
