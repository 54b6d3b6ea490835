// Package dtpattern compiles the compact CSVW date/time pattern language
// (https://w3c.github.io/csvw/syntax/#formats-for-dates-and-times) into a
// matching regular expression and a format template.
//
// The pattern vocabulary is closed: date sub-patterns and time sub-patterns
// must come from fixed allow-lists, joined by a single space or "T", with an
// optional fractional-seconds marker and an optional trailing timezone
// marker of one to three "x" or "X".
package dtpattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePatterns is the closed set of recognized date sub-patterns.
var datePatterns = map[string]bool{
	"yyyy-MM-dd": true, // e.g., 2015-03-22
	"yyyyMMdd":   true, // e.g., 20150322
	"dd-MM-yyyy": true, // e.g., 22-03-2015
	"d-M-yyyy":   true, // e.g., 22-3-2015
	"MM-dd-yyyy": true, // e.g., 03-22-2015
	"M-d-yyyy":   true, // e.g., 3-22-2015
	"dd/MM/yyyy": true, // e.g., 22/03/2015
	"d/M/yyyy":   true, // e.g., 22/3/2015
	"MM/dd/yyyy": true, // e.g., 03/22/2015
	"M/d/yyyy":   true, // e.g., 3/22/2015
	"dd.MM.yyyy": true, // e.g., 22.03.2015
	"d.M.yyyy":   true, // e.g., 22.3.2015
	"MM.dd.yyyy": true, // e.g., 03.22.2015
	"M.d.yyyy":   true, // e.g., 3.22.2015
}

// timePatterns is the closed set of recognized time sub-patterns.
var timePatterns = map[string]bool{
	"HH:mm:ss": true,
	"HHmmss":   true,
	"HH:mm":    true,
	"HHmm":     true,
}

// component is one emittable pattern token.
type component struct {
	group string // regex capture-group name, "" for literals
	re    string // regex fragment
	width int    // zero-padded width when formatting, 0 for minimal
	lit   string // literal text, set when group is ""
}

// translate maps pattern tokens to capture groups and format widths.
var translate = map[string]component{
	"yyyy": {group: "year", re: `(?P<year>[0-9]{4})`, width: 4},
	"MM":   {group: "month", re: `(?P<month>[0-9]{2})`, width: 2},
	"dd":   {group: "day", re: `(?P<day>[0-9]{2})`, width: 2},
	"M":    {group: "month", re: `(?P<month>[0-9]{1,2})`},
	"d":    {group: "day", re: `(?P<day>[0-9]{1,2})`},
	"HH":   {group: "hour", re: `(?P<hour>[0-9]{2})`, width: 2},
	"mm":   {group: "minute", re: `(?P<minute>[0-9]{2})`, width: 2},
	"ss":   {group: "second", re: `(?P<second>[0-9]{2})`, width: 2},
}

var tzMarkerRe = regexp.MustCompile(` ?[xX]{1,3}$`)

// Pattern is a compiled date/time pattern.
type Pattern struct {
	regex *regexp.Regexp
	parts []component
	// TZMarker is the trailing timezone marker including its optional
	// leading space, or "" when the pattern has none.
	TZMarker string
	// Fraction is the number of fractional-second digits, 0 when absent.
	Fraction int
}

// Compile translates a pattern into its regex/template pair. With timeOnly
// set, a pattern without a date/time separator is treated as a time
// sub-pattern instead of a date sub-pattern.
func Compile(pattern string, timeOnly bool) (*Pattern, error) {
	p := &Pattern{}
	rest := pattern

	if m := tzMarkerRe.FindString(rest); m != "" {
		if strings.ContainsRune(m, 'x') && strings.ContainsRune(m, 'X') {
			return nil, fmt.Errorf("invalid date/time pattern: %s", pattern)
		}
		p.TZMarker = m
		rest = rest[:len(rest)-len(m)]
	}

	// Only a single space or "T" may separate the date and time parts, and
	// neither is allowed anywhere else in the pattern.
	dtSep := ""
	for _, sep := range []string{" ", "T"} {
		if strings.Contains(rest, sep) {
			dtSep = sep
			break
		}
	}

	var dfmt, tfmt string
	switch {
	case dtSep != "":
		dfmt, tfmt, _ = strings.Cut(rest, dtSep)
	case timeOnly:
		tfmt = rest
	default:
		dfmt = rest
	}

	if i := strings.IndexByte(tfmt, '.'); i >= 0 {
		frac := tfmt[i+1:]
		tfmt = tfmt[:i]
		if frac == "" || strings.Trim(frac, "S") != "" {
			return nil, fmt.Errorf("invalid date/time pattern: %s", pattern)
		}
		p.Fraction = len(frac)
	}

	if (dfmt != "" && !datePatterns[dfmt]) || (tfmt != "" && !timePatterns[tfmt]) {
		return nil, fmt.Errorf("invalid date/time pattern: %s", pattern)
	}

	var regex strings.Builder
	regex.WriteByte('^')

	if dfmt != "" {
		dSep := ""
		for _, sep := range []string{".", "-", "/"} {
			if strings.Contains(dfmt, sep) {
				dSep = sep
				break
			}
		}
		if dSep == "" {
			return nil, fmt.Errorf("invalid date separator in pattern: %s", pattern)
		}
		for i, part := range strings.Split(dfmt, dSep) {
			if i > 0 {
				p.parts = append(p.parts, component{lit: dSep})
				regex.WriteString(regexp.QuoteMeta(dSep))
			}
			c, ok := translate[part]
			if !ok {
				return nil, fmt.Errorf("invalid date/time pattern: %s", pattern)
			}
			p.parts = append(p.parts, c)
			regex.WriteString(c.re)
		}
	}

	if dtSep != "" {
		p.parts = append(p.parts, component{lit: dtSep})
		regex.WriteString(regexp.QuoteMeta(dtSep))
	}

	if tfmt != "" {
		for i, part := range strings.Split(tfmt, ":") {
			if i > 0 {
				p.parts = append(p.parts, component{lit: ":"})
				regex.WriteString(regexp.QuoteMeta(":"))
			}
			c, ok := translate[part]
			if !ok {
				return nil, fmt.Errorf("invalid date/time pattern: %s", pattern)
			}
			p.parts = append(p.parts, c)
			regex.WriteString(c.re)
		}
	}

	if p.Fraction > 0 {
		regex.WriteString(fmt.Sprintf(`\.(?P<microsecond>[0-9]{1,%d})`, p.Fraction))
	}

	re, err := regexp.Compile(regex.String())
	if err != nil {
		return nil, fmt.Errorf("invalid date/time pattern: %s", pattern)
	}
	p.regex = re
	return p, nil
}

// Components holds the integer date/time components extracted from a lexical
// value. Offset is seconds east of UTC; HasOffset distinguishes "+00:00"
// from an absent timezone.
type Components struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Microsecond          int
	Offset               int
	HasOffset            bool
}

// Parse matches a lexical value against the compiled pattern and extracts
// its components. The match is anchored at the start only, mirroring the
// prefix-match semantics of the source pattern language.
func (p *Pattern) Parse(v string) (Components, error) {
	m := p.regex.FindStringSubmatch(v)
	if m == nil {
		return Components{}, fmt.Errorf("no match")
	}

	var c Components
	for i, name := range p.regex.SubexpNames() {
		if i == 0 || name == "" || m[i] == "" {
			continue
		}
		switch name {
		case "year":
			c.Year, _ = strconv.Atoi(m[i])
		case "month":
			c.Month, _ = strconv.Atoi(m[i])
		case "day":
			c.Day, _ = strconv.Atoi(m[i])
		case "hour":
			c.Hour, _ = strconv.Atoi(m[i])
		case "minute":
			c.Minute, _ = strconv.Atoi(m[i])
		case "second":
			c.Second, _ = strconv.Atoi(m[i])
		case "microsecond":
			// Chop anything below microsecond precision, then right-pad to
			// six digits.
			digits := m[i]
			if len(digits) > 6 {
				digits = digits[:6]
			}
			digits += strings.Repeat("0", 6-len(digits))
			c.Microsecond, _ = strconv.Atoi(digits)
		}
	}

	if p.TZMarker != "" {
		if off, ok := trailingOffset(v); ok {
			c.Offset = off
			c.HasOffset = true
		}
	}
	return c, nil
}

// trailingOffset extracts a timezone offset from the end of a lexical value:
// "Z", "+HH", "+HH:MM" or "+HHMM", optionally preceded by a space.
func trailingOffset(v string) (int, bool) {
	v = strings.TrimRight(v, " ")
	if strings.HasSuffix(v, "Z") {
		return 0, true
	}
	for _, n := range []int{6, 5, 3} {
		if len(v) < n {
			continue
		}
		tail := v[len(v)-n:]
		sign := 1
		switch tail[0] {
		case '+':
		case '-':
			sign = -1
		default:
			continue
		}
		var hh, mm string
		switch n {
		case 6: // +HH:MM
			if tail[3] != ':' {
				continue
			}
			hh, mm = tail[1:3], tail[4:6]
		case 5: // +HHMM
			hh, mm = tail[1:3], tail[3:5]
		case 3: // +HH
			hh, mm = tail[1:3], "0"
		}
		h, err1 := strconv.Atoi(hh)
		m, err2 := strconv.Atoi(mm)
		if err1 != nil || err2 != nil {
			continue
		}
		return sign * (h*3600 + m*60), true
	}
	return 0, false
}

// Format renders a time value using the compiled template and re-attaches
// the timezone suffix per the marker's policy.
func (p *Pattern) Format(t time.Time) string {
	var b strings.Builder
	for _, part := range p.parts {
		if part.group == "" {
			b.WriteString(part.lit)
			continue
		}
		var n int
		switch part.group {
		case "year":
			n = t.Year()
		case "month":
			n = int(t.Month())
		case "day":
			n = t.Day()
		case "hour":
			n = t.Hour()
		case "minute":
			n = t.Minute()
		case "second":
			n = t.Second()
		}
		if part.width > 0 {
			fmt.Fprintf(&b, "%0*d", part.width, n)
		} else {
			b.WriteString(strconv.Itoa(n))
		}
	}

	if p.Fraction > 0 {
		micro := fmt.Sprintf("%06d", t.Nanosecond()/1000)
		b.WriteByte('.')
		b.WriteString(micro[:p.Fraction])
	}

	if p.TZMarker != "" {
		_, offset := t.Zone()
		b.WriteString(RenderOffset(offset, p.TZMarker))
	}
	return b.String()
}

// RenderOffset renders a timezone offset (seconds east of UTC) according to
// a timezone marker's policy: a leading space when the marker itself starts
// with a space, a colon between hours and minutes only for three-letter
// markers, and minutes suppressed for a one-letter marker when they are
// zero.
func RenderOffset(offsetSeconds int, marker string) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hh := offsetSeconds / 3600
	mm := (offsetSeconds % 3600) / 60

	var b strings.Builder
	if strings.HasPrefix(marker, " ") {
		b.WriteByte(' ')
	}
	b.WriteString(sign)
	fmt.Fprintf(&b, "%02d", hh)

	tzType := len(strings.TrimSpace(marker))
	if tzType == 3 {
		b.WriteByte(':')
	}
	if (tzType == 1 && mm != 0) || tzType > 1 {
		fmt.Fprintf(&b, "%02d", mm)
	}
	return b.String()
}
