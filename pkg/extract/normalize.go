package extract

import "strings"

// NormWS collapses every run of whitespace, including non-breaking
// (U+00A0), narrow no-break (U+202F) and thin (U+2009) spaces, into a
// single ASCII space and trims the ends. Empty in, empty out.
func NormWS(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}
