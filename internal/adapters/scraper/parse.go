package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"networkingbude/internal/domain"
)

// ErrNoEvent is returned when a page carries neither event markup nor a title.
var ErrNoEvent = errors.New("no event found on page")

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseEventPage extracts an event from an HTML page. schema.org Event JSON-LD is
// preferred; Open Graph tags and common markup fill whatever it leaves blank.
func ParseEventPage(r io.Reader, pageURL string) (*domain.ScrapedEvent, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	h := collectHints(doc)

	ev := &domain.ScrapedEvent{URL: pageURL}
	for _, block := range h.ldJSON {
		var v any
		if err := json.Unmarshal([]byte(block), &v); err != nil {
			continue
		}
		if obj := findEvent(v); obj != nil {
			applyLDEvent(ev, obj)
			break
		}
	}
	h.fill(ev)

	if ev.Title == "" {
		return nil, ErrNoEvent
	}
	ev.ImageURL = resolveURL(pageURL, ev.ImageURL)
	return ev, nil
}

// findEvent returns the first JSON-LD object typed as an Event, looking inside
// arrays and @graph containers.
func findEvent(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if obj := findEvent(item); obj != nil {
				return obj
			}
		}
	case map[string]any:
		if isEventType(t["@type"]) {
			return t
		}
		if g, ok := t["@graph"]; ok {
			return findEvent(g)
		}
	}
	return nil
}

func isEventType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.HasSuffix(t, "Event")
	case []any:
		for _, item := range t {
			if isEventType(item) {
				return true
			}
		}
	}
	return false
}

func applyLDEvent(ev *domain.ScrapedEvent, obj map[string]any) {
	ev.Title = str(obj["name"])
	ev.Description = str(obj["description"])
	ev.StartsAt = parseTime(str(obj["startDate"]))
	ev.EndsAt = parseTime(str(obj["endDate"]))
	ev.Location = locationText(obj["location"])
	ev.Organization = nameOf(obj["organizer"])
	ev.ImageURL = imageOf(obj["image"])
}

func str(v any) string {
	s, _ := v.(string)
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

func first(v any, pick func(any) string) string {
	if items, ok := v.([]any); ok {
		for _, item := range items {
			if s := pick(item); s != "" {
				return s
			}
		}
		return ""
	}
	return pick(v)
}

func nameOf(v any) string {
	return first(v, func(v any) string {
		if obj, ok := v.(map[string]any); ok {
			return str(obj["name"])
		}
		return str(v)
	})
}

func imageOf(v any) string {
	return first(v, func(v any) string {
		if obj, ok := v.(map[string]any); ok {
			if u := str(obj["url"]); u != "" {
				return u
			}
			return str(obj["contentUrl"])
		}
		return str(v)
	})
}

func locationText(v any) string {
	return first(v, func(v any) string {
		obj, ok := v.(map[string]any)
		if !ok {
			return str(v)
		}
		name := str(obj["name"])
		addr := addressText(obj["address"])
		switch {
		case name == "":
			return addr
		case addr == "":
			return name
		case strings.Contains(addr, name):
			return addr
		default:
			return name + ", " + addr
		}
	})
}

func addressText(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return str(v)
	}
	var parts []string
	for _, k := range []string{"streetAddress", "addressLocality", "addressRegion"} {
		if s := str(obj[k]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// pageHints holds the non-JSON-LD markup the fallbacks read from.
type pageHints struct {
	ldJSON    []string
	meta      map[string]string
	h1        string
	title     string
	startProp string
	timeAttr  string
	eventDate string
	location  string
}

func collectHints(doc *html.Node) *pageHints {
	h := &pageHints{meta: make(map[string]string)}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script":
				if strings.Contains(attr(n, "type"), "ld+json") {
					h.ldJSON = append(h.ldJSON, rawText(n))
				}
				return
			case "style":
				return
			case "meta":
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				if _, seen := h.meta[key]; key != "" && !seen {
					h.meta[key] = strings.TrimSpace(attr(n, "content"))
				}
			case "h1":
				setOnce(&h.h1, textContent(n))
			case "title":
				setOnce(&h.title, textContent(n))
			case "time":
				setOnce(&h.timeAttr, attr(n, "datetime"))
			}
			switch attr(n, "itemprop") {
			case "startDate":
				setOnce(&h.startProp, firstNonEmpty(attr(n, "content"), attr(n, "datetime"), textContent(n)))
			case "location":
				setOnce(&h.location, textContent(n))
			}
			if hasClass(n, "event-location") {
				setOnce(&h.location, textContent(n))
			}
			if hasClass(n, "event-date") {
				setOnce(&h.eventDate, firstNonEmpty(attr(n, "datetime"), attr(n, "content"), textContent(n)))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return h
}

// fill sets the event fields that are still blank.
func (h *pageHints) fill(ev *domain.ScrapedEvent) {
	setOnce(&ev.Title, firstNonEmpty(h.meta["og:title"], h.h1, h.title))
	setOnce(&ev.Description, firstNonEmpty(h.meta["og:description"], h.meta["description"]))
	setOnce(&ev.Location, h.location)
	setOnce(&ev.ImageURL, h.meta["og:image"])
	setOnce(&ev.Organization, h.meta["og:site_name"])
	if ev.StartsAt == nil {
		for _, s := range []string{h.startProp, h.timeAttr, h.eventDate} {
			if t := parseTime(s); t != nil {
				ev.StartsAt = t
				break
			}
		}
	}
}

func setOnce(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func rawText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
