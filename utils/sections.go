package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// sectionHeadRe matches "N. label:" at a line start. A digit straight after
	// the period is rejected so dates like 12.05.2025 do not open sections.
	sectionHeadRe = regexp.MustCompile(`(?m)^[ \t]*(\d{1,2})[.)][ \t]*([^\d:\n][^:\n]*):`)
	// numberedLineRe matches any numbered line; it bounds section bodies.
	numberedLineRe = regexp.MustCompile(`(?m)^[ \t]*\d{1,2}[.)](?:[^\d]|$)`)
)

// section is one "N. label: body" block of a report.
type section struct {
	Number int
	Label  string
	Body   string
}

// scanSections returns the numbered sections of text in order of appearance.
// Each body runs from the colon to the next numbered line or the end of text.
func scanSections(text string) []section {
	heads := sectionHeadRe.FindAllStringSubmatchIndex(text, -1)
	if len(heads) == 0 {
		return nil
	}
	bounds := numberedLineRe.FindAllStringIndex(text, -1)

	sections := make([]section, 0, len(heads))
	for _, h := range heads {
		n, err := strconv.Atoi(text[h[2]:h[3]])
		if err != nil {
			continue
		}
		end := len(text)
		for _, b := range bounds {
			if b[0] >= h[1] {
				end = b[0]
				break
			}
		}
		sections = append(sections, section{
			Number: n,
			Label:  strings.TrimSpace(text[h[4]:h[5]]),
			Body:   joinLines(text[h[1]:end]),
		})
	}
	return sections
}

// nameMatcher finds the unit name header line.
type nameMatcher struct {
	patterns []*regexp.Regexp
}

func newNameMatcher(labels []string) nameMatcher {
	return nameMatcher{
		patterns: compileLabels(labels, `(?im)^[ \t]*`, `[ \t]*[:\-–][ \t]*(\S[^\n]*)$`),
	}
}

// find returns the normalised value of the earliest header line, or Nil.
func (m nameMatcher) find(text string) string {
	best, value := -1, ""
	for _, re := range m.patterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			best, value = loc[0], text[loc[2]:loc[3]]
		}
	}
	return Normalize(value)
}
