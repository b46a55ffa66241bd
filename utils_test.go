package pmesh

import "testing"

func TestFormatDimension(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want string
	}{
		{2.5, "2.5"},
		{3, "3"},
		{12.345, "12.345"},
		{0.1, "0.1"},
		{0.0004, "0"},
		{-0.0001, "0"},
		{-1.25, "-1.25"},
		{100, "100"},
	} {
		if got := FormatDimension(test.v); got != test.want {
			t.Errorf("FormatDimension(%g) = %q, want %q", test.v, got, test.want)
		}
	}
	if got := Name("JIS Nut", "M"+FormatDimension(3)); got != "JIS Nut M3" {
		t.Errorf("got %q", got)
	}
}
