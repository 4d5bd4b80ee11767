package scraper

import "strings"

// categoryLabels maps listing URL slugs to the labels used in exported
// records. Slugs missing here pass through verbatim.
var categoryLabels = map[string]string{
	"moderkort":            "Motherboards",
	"vattenkylningssystem": "Water Cooling",
	"nataggregat":          "Power Supply Units",
	"grafikkort":           "Graphics Cards",
}

// ResolveCategory extracts the slug following "/c/" from a listing URL
// (dropping any query string) and resolves it to a human-readable label.
func ResolveCategory(rawURL string) string {
	_, after, found := strings.Cut(rawURL, "/c/")
	if !found {
		return ""
	}
	slug, _, _ := strings.Cut(after, "?")
	if label, ok := categoryLabels[slug]; ok {
		return label
	}
	return slug
}
