package utils

import (
	"regexp"

	"github.com/Aashish23092/irbn-report-extractor/dto"
)

const (
	// optional "3." or "-" before a label
	labelPrefix = `(?im)^[ \t]*(?:\d{1,2}[.)][ \t]*|[-*•][ \t]*)?`
	// rest of the label up to its colon, or a dash separator
	labelSuffix = `(?:[^:\n]{0,80}?:|[ \t]*[-–])?[ \t]*`
)

// legacyField is the compiled vocabulary of one field.
type legacyField struct {
	field dto.Field
	start []*regexp.Regexp
	stop  *regexp.Regexp
}

// LegacyExtractor is the last-resort extractor for reports without reliable
// numbering: each field is the span after its label up to the next numbered
// line, bullet or known section label.
type LegacyExtractor struct {
	fields    []legacyField
	name      nameMatcher
	districts *DistrictDeriver
}

// NewLegacyExtractor builds a label-slicing extractor over rules.
func NewLegacyExtractor(rules Rules) *LegacyExtractor {
	e := &LegacyExtractor{
		name:      newNameMatcher(rules.NameLabels),
		districts: NewDistrictDeriver(rules),
	}
	for _, f := range dto.BodyFields() {
		if f == dto.FieldDistricts {
			continue
		}
		e.fields = append(e.fields, legacyField{
			field: f,
			start: compileLabels(rules.Rule(f).StartLabels, labelPrefix, labelSuffix),
			stop:  compileStop(rules.stopLabels(f)),
		})
	}
	return e
}

// compileStop joins numbered lines, bullets and stop labels into one
// line-anchored alternation.
func compileStop(labels []string) *regexp.Regexp {
	pattern := `(?im)^[ \t]*(?:\d{1,2}[.)](?:[^\d]|$)|[-*•][ \t]`
	for _, l := range labels {
		if _, err := regexp.Compile(`(?i)` + l); err != nil {
			continue
		}
		pattern += `|(?:` + l + `)`
	}
	return regexp.MustCompile(pattern + `)`)
}

// Name identifies the strategy in logs and results.
func (e *LegacyExtractor) Name() string { return "legacy" }

// Extract never fails: a field whose label is absent stays Nil.
func (e *LegacyExtractor) Extract(text string) dto.ReportRecord {
	rec := dto.NewReportRecord()
	rec.Set(dto.FieldUnitName, e.name.find(text))

	for _, lf := range e.fields {
		rec.Set(lf.field, Normalize(lf.capture(text)))
	}
	rec.Set(dto.FieldDistricts, e.districts.Derive(text))

	finalize(&rec)
	return rec
}

// capture returns the span after the first start label that occurs in text.
func (lf legacyField) capture(text string) string {
	for _, re := range lf.start {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		from := loc[1]
		return text[from:stopIndex(lf.stop, text, from)]
	}
	return ""
}

// stopIndex returns the absolute offset of the first stop marker after from,
// or len(text). Matches at the start of the slice only count when from is
// itself a line start.
func stopIndex(stop *regexp.Regexp, text string, from int) int {
	rest := text[from:]
	atLineStart := from == 0 || text[from-1] == '\n'
	for _, m := range stop.FindAllStringIndex(rest, -1) {
		if m[0] == 0 && !atLineStart {
			continue
		}
		return from + m[0]
	}
	return len(text)
}
