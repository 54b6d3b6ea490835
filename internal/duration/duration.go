// Package duration implements parsing and formatting of ISO 8601 durations
// as used by the CSVW duration datatype.
package duration

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/csvw/internal/num"
)

// Duration is a parsed ISO 8601 duration. Components are kept separate;
// no calendar arithmetic is performed on them.
type Duration struct {
	Negative bool
	Years    int
	Months   int
	Days     int
	Hours    int
	Minutes  int
	Seconds  num.Dec
	// hasSeconds distinguishes PT0S from an absent seconds component so the
	// canonical form round-trips.
	hasSeconds bool
}

// Parse parses an ISO 8601 duration lexical value such as "P1Y2M3DT4H5M6.7S"
// or "P5W".
func Parse(s string) (Duration, error) {
	var d Duration
	orig := s

	if strings.HasPrefix(s, "-") {
		d.Negative = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") {
		return Duration{}, fmt.Errorf("invalid duration: %s", orig)
	}
	s = s[1:]
	if s == "" {
		return Duration{}, fmt.Errorf("invalid duration: %s", orig)
	}

	datePart, timePart, hasTime := strings.Cut(s, "T")
	if hasTime && timePart == "" {
		return Duration{}, fmt.Errorf("invalid duration: %s", orig)
	}

	// Weeks may not be combined with any other component.
	if strings.ContainsRune(datePart, 'W') {
		if hasTime {
			return Duration{}, fmt.Errorf("invalid duration: %s", orig)
		}
		n, rest, err := leadingInt(datePart)
		if err != nil || rest != "W" {
			return Duration{}, fmt.Errorf("invalid duration: %s", orig)
		}
		d.Days = n * 7
		return d, nil
	}

	seen := false
	for _, c := range []struct {
		designator byte
		field      *int
	}{
		{'Y', &d.Years},
		{'M', &d.Months},
		{'D', &d.Days},
	} {
		n, rest, ok, err := component(datePart, c.designator)
		if err != nil {
			return Duration{}, fmt.Errorf("invalid duration: %s", orig)
		}
		if ok {
			*c.field = n
			datePart = rest
			seen = true
		}
	}
	if datePart != "" {
		return Duration{}, fmt.Errorf("invalid duration: %s", orig)
	}

	if hasTime {
		for _, c := range []struct {
			designator byte
			field      *int
		}{
			{'H', &d.Hours},
			{'M', &d.Minutes},
		} {
			n, rest, ok, err := component(timePart, c.designator)
			if err != nil {
				return Duration{}, fmt.Errorf("invalid duration: %s", orig)
			}
			if ok {
				*c.field = n
				timePart = rest
				seen = true
			}
		}
		if timePart != "" {
			if !strings.HasSuffix(timePart, "S") {
				return Duration{}, fmt.Errorf("invalid duration: %s", orig)
			}
			sec, err := num.Parse(strings.TrimSuffix(timePart, "S"))
			if err != nil || sec.Neg {
				return Duration{}, fmt.Errorf("invalid duration: %s", orig)
			}
			d.Seconds = sec
			d.hasSeconds = true
			seen = true
		}
	}
	if !seen {
		return Duration{}, fmt.Errorf("invalid duration: %s", orig)
	}
	return d, nil
}

// component extracts a leading "<digits><designator>" pair if present.
func component(s string, designator byte) (int, string, bool, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != designator {
		return 0, s, false, nil
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false, err
	}
	return n, s[i+1:], true, nil
}

func leadingInt(s string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, fmt.Errorf("no digits")
	}
	n, err := strconv.Atoi(s[:i])
	return n, s[i:], err
}

// String formats the duration in its canonical ISO 8601 form. The zero
// duration renders as "PT0S".
func (d Duration) String() string {
	var b strings.Builder
	b.Grow(32)
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')

	if d.Years != 0 {
		fmt.Fprintf(&b, "%dY", d.Years)
	}
	if d.Months != 0 {
		fmt.Fprintf(&b, "%dM", d.Months)
	}
	if d.Days != 0 {
		fmt.Fprintf(&b, "%dD", d.Days)
	}

	timeStart := b.Len()
	hasTime := d.Hours != 0 || d.Minutes != 0 || (d.hasSeconds && !d.Seconds.IsZero())
	if hasTime {
		b.WriteByte('T')
		if d.Hours != 0 {
			fmt.Fprintf(&b, "%dH", d.Hours)
		}
		if d.Minutes != 0 {
			fmt.Fprintf(&b, "%dM", d.Minutes)
		}
		if d.hasSeconds && !d.Seconds.IsZero() {
			fmt.Fprintf(&b, "%sS", d.Seconds.String())
		}
	}

	if b.Len() == timeStart && timeStart == len("P")+boolToInt(d.Negative) {
		// No component emitted at all.
		b.WriteString("T0S")
	}
	return b.String()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
