package articles

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Opening Night", "opening-night"},
		{"  Trailing  Spaces  ", "trailing-spaces"},
		{"Açaí & Friends!", "a-a-friends"},
		{"--already--dashed--", "already-dashed"},
		{"2024: A Retrospective", "2024-a-retrospective"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNextAvailableSlug(t *testing.T) {
	if got := NextAvailableSlug("show", nil); got != "show" {
		t.Errorf("free base should stay, got %q", got)
	}
	if got := NextAvailableSlug("show", []string{"show"}); got != "show-2" {
		t.Errorf("first collision should pick -2, got %q", got)
	}
	if got := NextAvailableSlug("show", []string{"show", "show-2", "show-3"}); got != "show-4" {
		t.Errorf("expected show-4, got %q", got)
	}
	if got := NextAvailableSlug("show", []string{"show", "show-3"}); got != "show-2" {
		t.Errorf("gaps should be reused, got %q", got)
	}
}
