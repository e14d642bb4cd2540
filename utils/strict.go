package utils

import "github.com/Aashish23092/irbn-report-extractor/dto"

// StrictExtractor parses reports that follow the numbered template exactly:
// section N always feeds the N-th body field.
type StrictExtractor struct {
	sections []dto.Field
	name     nameMatcher
}

// NewStrictExtractor builds a strict extractor over rules.
func NewStrictExtractor(rules Rules) *StrictExtractor {
	return &StrictExtractor{
		sections: append([]dto.Field(nil), rules.SectionFields...),
		name:     newNameMatcher(rules.NameLabels),
	}
}

// Name identifies the strategy in logs and results.
func (e *StrictExtractor) Name() string { return "strict" }

// Extract always returns a full record; unmatched fields stay Nil and a
// repeated section number overwrites the earlier one.
func (e *StrictExtractor) Extract(text string) dto.ReportRecord {
	rec := dto.NewReportRecord()
	rec.Set(dto.FieldUnitName, e.name.find(text))

	for _, s := range scanSections(text) {
		if s.Number < 1 || s.Number > len(e.sections) {
			continue
		}
		rec.Set(e.sections[s.Number-1], Normalize(s.Body))
	}

	finalize(&rec)
	return rec
}
