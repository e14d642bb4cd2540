package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/dto"
)

// CanonicalDateLayout is how parsed dates are written back.
const CanonicalDateLayout = "02.01.2006"

var (
	numericDateRe = regexp.MustCompile(`^\d{1,4}[./\-]\d{1,2}[./\-]\d{1,4}$`)
	textDateRe    = regexp.MustCompile(`^\d{1,2}(?:st|nd|rd|th)?[ \-][A-Za-z]{3,9}\.?,?[ \-]\d{2,4}$`)
	ordinalRe     = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)`)
	septRe        = regexp.MustCompile(`(?i)\bsept\b`)
)

var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
	"2006.01.02",
	"02.01.06",
	"2.1.06",
	"02/01/06",
	"02-01-06",
	"2 Jan 2006",
	"2 January 2006",
	"2 Jan, 2006",
	"2 January, 2006",
	"2 Jan 06",
	"2 January 06",
	"2 Jan, 06",
	"2-Jan-2006",
	"2-Jan-06",
}

// ParseReportDate tries every accepted layout in order.
func ParseReportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	s = ordinalRe.ReplaceAllString(s, "$1")
	s = septRe.ReplaceAllString(s, "Sep")
	s = strings.Replace(s, ".,", ",", 1)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if strings.HasSuffix(s, ".") {
		return ParseReportDate(strings.TrimSuffix(s, "."))
	}
	return time.Time{}, false
}

// NormalizeDateValue canonicalises a value that consists of a single date.
// A date-shaped value that fails every layout becomes Nil; any other text is
// returned unchanged.
func NormalizeDateValue(value string) string {
	v := strings.TrimSpace(value)
	if v == "" || v == dto.NilValue {
		return dto.NilValue
	}
	if !numericDateRe.MatchString(v) && !textDateRe.MatchString(v) {
		return value
	}
	t, ok := ParseReportDate(v)
	if !ok {
		return dto.NilValue
	}
	return t.Format(CanonicalDateLayout)
}
