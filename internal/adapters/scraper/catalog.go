package scraper

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"networkingbude/internal/domain"
)

// catalogFile is the on-disk layout of the event source list:
//
//	regions:
//	  grand-rapids:
//	    - organization: Makers Guild
//	      url: https://makers.example/events/june
type catalogFile struct {
	Regions map[string][]domain.EventSource `yaml:"regions"`
}

// Catalog is a static EventSourceCatalog read from YAML.
type Catalog struct {
	regions map[string][]domain.EventSource
}

// LoadCatalog reads the catalog at path. An empty path yields an empty catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return &Catalog{regions: map[string][]domain.EventSource{}}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event sources: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog. Sources must be absolute http(s) URLs;
// duplicates within a region are dropped.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse event sources: %w", err)
	}
	c := &Catalog{regions: make(map[string][]domain.EventSource, len(f.Regions))}
	for region, sources := range f.Regions {
		region = strings.TrimSpace(region)
		seen := make(map[string]struct{}, len(sources))
		for i, src := range sources {
			src.URL = strings.TrimSpace(src.URL)
			src.Organization = strings.TrimSpace(src.Organization)
			u, err := url.Parse(src.URL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return nil, fmt.Errorf("region %s source %d: invalid url %q", region, i+1, src.URL)
			}
			if _, dup := seen[src.URL]; dup {
				continue
			}
			seen[src.URL] = struct{}{}
			c.regions[region] = append(c.regions[region], src)
		}
	}
	return c, nil
}

// SourcesForRegion returns the configured sources of regionID in file order.
func (c *Catalog) SourcesForRegion(regionID string) []domain.EventSource {
	return c.regions[regionID]
}

// Regions returns the number of regions with at least one source.
func (c *Catalog) Regions() int {
	return len(c.regions)
}
