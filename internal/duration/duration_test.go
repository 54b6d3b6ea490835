package duration

import "testing"

func TestParseAndString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "full", in: "P1Y2M3DT4H5M6S", want: "P1Y2M3DT4H5M6S"},
		{name: "date only", in: "P1Y", want: "P1Y"},
		{name: "time only", in: "PT30M", want: "PT30M"},
		{name: "fractional seconds", in: "PT0.5S", want: "PT0.5S"},
		{name: "negative", in: "-P1D", want: "-P1D"},
		{name: "weeks", in: "P2W", want: "P14D"},
		{name: "zero", in: "PT0S", want: "PT0S"},
		{name: "zero components dropped", in: "P0Y1M0D", want: "P1M"},
	}

	for _, tc := range tests {
		d, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("%s: Parse(%q): %v", tc.name, tc.in, err)
		}
		if got := d.String(); got != tc.want {
			t.Fatalf("%s: Parse(%q).String() = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "missing P", in: "1Y"},
		{name: "bare P", in: "P"},
		{name: "trailing T", in: "P1DT"},
		{name: "weeks with time", in: "P1WT1H"},
		{name: "weeks with days", in: "P1W2D"},
		{name: "unordered", in: "P1M2Y"},
		{name: "negative seconds", in: "PT-5S"},
		{name: "junk", in: "Pabc"},
	}

	for _, tc := range tests {
		if _, err := Parse(tc.in); err == nil {
			t.Fatalf("%s: Parse(%q) succeeded, want error", tc.name, tc.in)
		}
	}
}

func TestComponents(t *testing.T) {
	d, err := Parse("P1Y2M3DT4H5M6.75S")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Years != 1 || d.Months != 2 || d.Days != 3 || d.Hours != 4 || d.Minutes != 5 {
		t.Fatalf("unexpected components: %+v", d)
	}
	if d.Seconds.String() != "6.75" {
		t.Fatalf("Seconds = %s, want 6.75", d.Seconds.String())
	}
}
