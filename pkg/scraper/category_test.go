package scraper

import "testing"

func TestResolveCategory(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.prisjakt.nu/c/moderkort", "Motherboards"},
		{"https://www.prisjakt.nu/c/grafikkort?page=3", "Graphics Cards"},
		{"https://www.prisjakt.nu/c/nataggregat", "Power Supply Units"},
		// unmapped slugs pass through verbatim
		{"https://www.prisjakt.nu/c/foo", "foo"},
		{"https://www.prisjakt.nu/c/foo?sort=price", "foo"},
		// not a listing URL
		{"https://www.prisjakt.nu/produkt.php?p=1", ""},
	}

	for _, c := range cases {
		if got := ResolveCategory(c.url); got != c.want {
			t.Errorf("ResolveCategory(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
