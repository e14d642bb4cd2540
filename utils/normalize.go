package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"golang.org/x/text/unicode/norm"
)

// stopWords are answers that mean "nothing to report".
var stopWords = map[string]bool{
	"none":           true,
	"nil":            true,
	"no":             true,
	"no issue":       true,
	"n/a":            true,
	"na":             true,
	"not applicable": true,
	"-":              true,
	"--":             true,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize canonicalises an extracted value: blank input and stop words become
// dto.NilValue, anything else is trimmed with whitespace runs collapsed.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	v := strings.TrimSpace(whitespaceRun.ReplaceAllString(raw, " "))
	if v == "" {
		return dto.NilValue
	}
	if stopWords[strings.ToLower(v)] {
		return dto.NilValue
	}
	return v
}

// IsZeroLike reports whether the trimmed value parses as the number 0.
func IsZeroLike(value string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil && f == 0
}

// RewriteZero maps zero-like values to dto.ZeroValue and leaves others untouched.
func RewriteZero(value string) string {
	if IsZeroLike(value) {
		return dto.ZeroValue
	}
	return value
}

// CanonicalizeText prepares pasted text for parsing: line endings become LF and
// the text is NFKC-normalised (full-width digits, non-breaking spaces, ligatures).
func CanonicalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFKC.String(text)
}

// normalizeLines splits text into trimmed, non-empty lines.
func normalizeLines(text string) []string {
	rawLines := strings.Split(text, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// joinLines flattens a multi-line span into one space-separated value.
func joinLines(span string) string {
	return strings.Join(normalizeLines(span), " ")
}

// FieldValue normalizes a single answer for field f the way extractors
// normalize their own output.
func FieldValue(f dto.Field, raw string) string {
	v := RewriteZero(Normalize(raw))
	if f == dto.FieldCOInteraction {
		v = NormalizeDateValue(v)
	}
	return v
}

// finalize applies the per-record post-pass shared by every extractor.
func finalize(rec *dto.ReportRecord) {
	for _, f := range dto.Fields() {
		rec.Set(f, RewriteZero(rec.Get(f)))
	}
	rec.Set(dto.FieldCOInteraction, NormalizeDateValue(rec.Get(dto.FieldCOInteraction)))
}
