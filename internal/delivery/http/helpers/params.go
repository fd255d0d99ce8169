package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"networkingbude/internal/domain"
)

// PathInt parses the named path value as a positive integer.
func PathInt(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return n, nil
}

// ScopeFromRequest builds the slot scope from the {collection} path value and,
// for region-scoped collections, the region query parameter.
func ScopeFromRequest(r *http.Request) (domain.Scope, error) {
	c, err := domain.ParseCollection(r.PathValue("collection"))
	if err != nil {
		return domain.Scope{}, fmt.Errorf("unknown collection %q", r.PathValue("collection"))
	}
	region := r.URL.Query().Get("region")
	if c.RegionScoped() && region == "" {
		return domain.Scope{}, fmt.Errorf("region query parameter is required for %s", c)
	}
	return domain.NewScope(c, region), nil
}
