package articles

import (
	"fmt"
	"regexp"
	"strings"
)

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowers the title and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NextAvailableSlug picks the base slug or the first free numbered variant
// (base-2, base-3, ...) given the set of slugs already taken.
func NextAvailableSlug(base string, taken []string) string {
	inUse := make(map[string]struct{}, len(taken))
	for _, slug := range taken {
		inUse[slug] = struct{}{}
	}

	if _, ok := inUse[base]; !ok {
		return base
	}
	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		if _, ok := inUse[candidate]; !ok {
			return candidate
		}
	}
}
