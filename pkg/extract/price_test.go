package extract

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in           string
		wantValue    float64
		wantNoValue  bool
		wantCurrency string
		wantRaw      string
	}{
		{in: "1.234,56 SEK", wantValue: 1234.56, wantCurrency: "SEK", wantRaw: "1.234,56 SEK"},
		{in: "1,234.56 USD", wantValue: 1234.56, wantCurrency: "USD", wantRaw: "1,234.56 USD"},
		{in: "299 kr", wantValue: 299, wantCurrency: "SEK", wantRaw: "299 kr"},
		{in: "1 999,95 kr", wantValue: 1999.95, wantCurrency: "SEK", wantRaw: "1 999,95 kr"},
		{in: "EUR 10.50", wantValue: 10.50, wantCurrency: "EUR", wantRaw: "EUR 10.50"},
		{in: "449,00 NOK", wantValue: 449, wantCurrency: "NOK", wantRaw: "449,00 NOK"},
		{in: "garbage", wantNoValue: true, wantCurrency: "", wantRaw: "garbage"},
		{in: "", wantNoValue: true, wantCurrency: "", wantRaw: ""},
		{in: "kr", wantNoValue: true, wantCurrency: "SEK", wantRaw: "kr"},
	}

	for _, c := range cases {
		value, currency, raw := ParsePrice(c.in)

		if c.wantNoValue {
			if value != nil {
				t.Errorf("ParsePrice(%q) value = %v, want nil", c.in, *value)
			}
		} else if value == nil {
			t.Errorf("ParsePrice(%q) value = nil, want %v", c.in, c.wantValue)
		} else if *value != c.wantValue {
			t.Errorf("ParsePrice(%q) value = %v, want %v", c.in, *value, c.wantValue)
		}

		if currency != c.wantCurrency {
			t.Errorf("ParsePrice(%q) currency = %q, want %q", c.in, currency, c.wantCurrency)
		}
		if raw != c.wantRaw {
			t.Errorf("ParsePrice(%q) raw = %q, want %q", c.in, raw, c.wantRaw)
		}
	}
}

func TestParsePriceNeverPanicsOnNoise(t *testing.T) {
	inputs := []string{".", ",", "kr kr kr", "1..2,,3", "  ", "SEKNOK", "9" /* bare digit */}
	for _, in := range inputs {
		// only interested in it returning a well-formed triple
		_, currency, raw := ParsePrice(in)
		if currency != "" && currency != "SEK" && currency != "NOK" && currency != "DKK" &&
			currency != "EUR" && currency != "USD" {
			t.Errorf("ParsePrice(%q) returned unexpected currency %q", in, currency)
		}
		if raw == "" && in != "" && NormWS(in) != "" {
			t.Errorf("ParsePrice(%q) lost the raw text", in)
		}
	}
}
