package utils

import "strings"

// SplitReports cuts a multi-report paste at delimiter lines (compared after
// trimming) and returns the non-blank chunks in input order.
func SplitReports(text string, delimiters []string) []string {
	isDelimiter := make(map[string]bool, len(delimiters))
	for _, d := range delimiters {
		if d = strings.TrimSpace(d); d != "" {
			isDelimiter[d] = true
		}
	}

	var (
		reports []string
		current []string
	)
	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, "\n"))
		if chunk != "" {
			reports = append(reports, chunk)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if isDelimiter[strings.TrimSpace(line)] {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return reports
}
