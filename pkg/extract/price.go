package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyRegex = regexp.MustCompile(`(?i)\b(SEK|NOK|DKK|EUR|USD|kr)\b`)
	amountRegex   = regexp.MustCompile(`(?i)(\d[\d\s.,]*)(?:\s*(?:SEK|kr))?`)

	// non-breaking, narrow no-break and thin space
	specialSpaces = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ")
)

// ParsePrice parses a raw price string into a numeric value, an uppercase
// currency code and the whitespace-normalized original text. Each of the
// three results can independently be absent (nil / empty); garbled input
// degrades to absent values rather than an error.
//
// The site mixes Swedish and international formats, so a token containing
// both "," and "." treats whichever appears last as the decimal separator.
// A bare "kr" is the local shorthand for SEK.
func ParsePrice(text string) (value *float64, currency string, raw string) {
	if text == "" {
		return nil, "", ""
	}

	raw = NormWS(specialSpaces.Replace(text))

	if m := currencyRegex.FindString(raw); m != "" {
		currency = strings.ToUpper(m)
		if currency == "KR" {
			currency = "SEK"
		}
	}

	if m := amountRegex.FindStringSubmatch(raw); m != nil {
		num := strings.ReplaceAll(m[1], " ", "")
		hasComma := strings.Contains(num, ",")
		hasDot := strings.Contains(num, ".")
		switch {
		case hasComma && hasDot:
			if strings.LastIndex(num, ",") > strings.LastIndex(num, ".") {
				num = strings.ReplaceAll(num, ".", "")
				num = strings.ReplaceAll(num, ",", ".")
			} else {
				num = strings.ReplaceAll(num, ",", "")
			}
		case hasComma:
			num = strings.ReplaceAll(num, ",", ".")
		}
		if v, err := strconv.ParseFloat(num, 64); err == nil {
			value = &v
		}
	}

	return value, currency, raw
}
