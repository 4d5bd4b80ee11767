package extract

import "testing"

func TestNormWS(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"a b", "a b"},
		{"  a   b  ", "a b"},
		{"a   b", "a b"},
		{"a b\tc\nd", "a b c d"},
		{"1 299 kr", "1 299 kr"},
	}

	for _, c := range cases {
		if got := NormWS(c.in); got != c.want {
			t.Errorf("NormWS(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormWSIdempotent(t *testing.T) {
	inputs := []string{"", "  a  b ", "x", "a    b  c"}
	for _, in := range inputs {
		once := NormWS(in)
		if twice := NormWS(once); twice != once {
			t.Errorf("NormWS not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
