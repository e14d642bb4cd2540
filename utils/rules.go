package utils

import (
	"fmt"
	"regexp"

	"github.com/Aashish23092/irbn-report-extractor/dto"
)

// FieldRule holds the matching vocabulary of one body field.
type FieldRule struct {
	// Keywords score reworded section labels (word-prefix match, case-insensitive).
	Keywords []string
	// StartLabels are regex fragments, tried in order, that open the field in
	// free-form reports.
	StartLabels []string
	// StopLabels are regex fragments that end the field's span. When empty the
	// start labels of every other body field are used.
	StopLabels []string
	// Question is asked of the QA overlay for this field.
	Question string
}

// Rules is the report vocabulary shared by all extractors. A Rules value is
// built once at start-up and must be treated as read-only afterwards.
type Rules struct {
	// NameLabels are regex fragments for the header line carrying the unit name.
	NameLabels []string
	// SectionFields maps template section N to SectionFields[N-1].
	SectionFields []dto.Field
	// Fields holds per-field vocabulary, keyed by body field.
	Fields map[dto.Field]FieldRule
	// NameQuestion is asked of the QA overlay for the unit name.
	NameQuestion string
	// KnownDistricts is the gazetteer used by DeriveDistricts.
	KnownDistricts []string
	// NonPlaceWords are capitalised words that look like "Place: 12" rows but
	// are report labels.
	NonPlaceWords []string
	// StrictThreshold is the strict fill count at which the cascade stops.
	StrictThreshold int
	// BatchDelimiters are the literal lines separating reports in one paste.
	BatchDelimiters []string
}

// DefaultRules returns the vocabulary of the IRBn daily report template.
func DefaultRules() Rules {
	return Rules{
		NameLabels: []string{
			`Name\s+of\s+(?:the\s+)?unit`,
			`Name\s+of\s+(?:the\s+)?Battalion`,
			`Name\s+of\s+(?:the\s+)?IRBn(?:\s*/\s*Bn)?`,
			`Unit\s+No\.?\s*(?:and|&)\s*Location`,
			`Name`,
		},
		SectionFields: []dto.Field{
			dto.FieldReservesDeployed,
			dto.FieldDistricts,
			dto.FieldStay,
			dto.FieldMessing,
			dto.FieldCOInteraction,
			dto.FieldDisciplinary,
			dto.FieldDetained,
			dto.FieldTraining,
			dto.FieldWelfare,
			dto.FieldReservesAvailable,
			dto.FieldIssue,
		},
		Fields: map[dto.Field]FieldRule{
			dto.FieldReservesDeployed: {
				Keywords: []string{"reserve", "deployed", "deployment", "strength", "in-charge", "incharge", "duration"},
				StartLabels: []string{
					`Details?\s+of\s+Reserves?(?:\s+deployed)?`,
					`Reserves?\s+deployed`,
					`Deployment\s+of\s+reserves?`,
					`Reserves?[ \t]*[:\-]`,
				},
				Question: "Which reserves are deployed, where, with what strength, for how long and under whose charge?",
			},
			dto.FieldDistricts: {
				Keywords: []string{"district", "distt", "force", "where", "location"},
				StartLabels: []string{
					`Districts?\s+where\s+(?:the\s+)?force\s+(?:is\s+)?deployed`,
					`Districts?\s+covered`,
					`Districts?[ \t]*[:\-]`,
				},
				Question: "In which districts is the force deployed?",
			},
			dto.FieldStay: {
				Keywords: []string{"stay", "accommodation", "bathroom", "toilet", "living", "barrack", "quality"},
				StartLabels: []string{
					`Stay\s+arrangements?`,
					`Accommodation`,
					`Bathrooms?`,
					`Living\s+conditions?`,
				},
				Question: "How are the stay arrangements and bathrooms?",
			},
			dto.FieldMessing: {
				Keywords: []string{"mess", "messing", "food", "ration", "kitchen", "meal"},
				StartLabels: []string{
					`Messing(?:\s+arrangements?)?`,
					`Mess\b`,
					`Food`,
					`Ration`,
				},
				Question: "How are the messing arrangements?",
			},
			dto.FieldCOInteraction: {
				Keywords: []string{"interaction", "interact", "co's", "sp", "meeting", "met"},
				StartLabels: []string{
					`Date\s+on\s+which\s+C\.?O`,
					`C\.?O'?s?\s+(?:last\s+)?interaction`,
					`Last\s+interaction`,
					`Interaction\s+with\s+S\.?P`,
				},
				Question: "On what date did the CO last interact with the SP?",
			},
			dto.FieldDisciplinary: {
				Keywords: []string{"disciplin", "indiscipline", "misconduct", "incident"},
				StartLabels: []string{
					`Any\s+(?:incident\s+of\s+)?(?:in)?disciplin(?:e|ary)`,
					`Disciplinary\s+issues?`,
					`Indiscipline`,
				},
				Question: "Were there any disciplinary issues?",
			},
			dto.FieldDetained: {
				Keywords: []string{"detain", "reserve", "held", "retained"},
				StartLabels: []string{
					`Reserves?\s+detained`,
					`Detained\s+reserves?`,
					`Detention`,
				},
				Question: "Which reserves are detained?",
			},
			dto.FieldTraining: {
				Keywords: []string{"training", "train", "drill", "firing", "course", "practice"},
				StartLabels: []string{
					`Training`,
					`Drill`,
				},
				Question: "What training was conducted?",
			},
			dto.FieldWelfare: {
				Keywords: []string{"welfare", "initiative", "well-being", "recreation"},
				StartLabels: []string{
					`Any\s+initiative`,
					`Welfare(?:\s+initiatives?)?`,
				},
				Question: "What welfare initiative was taken in the last 24 hours?",
			},
			dto.FieldReservesAvailable: {
				Keywords: []string{"available", "availability", "reserve", "spare"},
				StartLabels: []string{
					`Reserves?\s+available`,
					`Available\s+reserves?`,
					`Strength\s+available`,
				},
				Question: "How many reserves are available in the battalion?",
			},
			dto.FieldIssue: {
				Keywords: []string{"issue", "ap&t", "phq", "other", "concern", "problem"},
				StartLabels: []string{
					`Any\s+other\s+issues?`,
					`Issues?\s+for\s+AP&T`,
					`Issues?\s+for\s+PHQ`,
					`Other\s+issues?`,
				},
				Question: "Is there any issue for AP&T or PHQ?",
			},
		},
		NameQuestion: "What is the name of the unit or battalion?",
		KnownDistricts: []string{
			"Shimla", "Kullu", "Mandi", "Solan", "Sirmaur", "Bilaspur", "Kangra", "Nahan",
			"Chamba", "Hamirpur", "Una", "Lahaul", "Spiti", "Kinnaur", "Baddi", "Dharamshala",
			"D/Shala", "Nagrota", "Pandoh", "Jangalberi", "Bassi", "Sakoh", "Kotkhai",
			"Nirmand", "Thunag", "Kaithu", "Kanda",
		},
		NonPlaceWords: []string{
			"Name", "Unit", "Reserves", "Reserve", "Strength", "Total", "Date", "Duration",
			"Training", "Welfare", "Districts", "District", "Messing", "Stay", "Issue",
			"Issues", "Incharge", "In", "Companies", "Available", "Detained", "Time", "Nil",
		},
		StrictThreshold: 6,
		BatchDelimiters: []string{"---", "===", "***"},
	}
}

// Rule returns the vocabulary of f, or an empty rule.
func (r Rules) Rule(f dto.Field) FieldRule {
	return r.Fields[f]
}

// stopLabels returns the labels that end f's span in free-form text.
func (r Rules) stopLabels(f dto.Field) []string {
	if rule := r.Fields[f]; len(rule.StopLabels) > 0 {
		return rule.StopLabels
	}
	var out []string
	for _, other := range dto.BodyFields() {
		if other == f {
			continue
		}
		out = append(out, r.Fields[other].StartLabels...)
	}
	return out
}

// Validate checks that every pattern compiles and the section table is usable.
func (r Rules) Validate() error {
	for i, f := range r.SectionFields {
		if !f.Valid() || f == dto.FieldUnitName {
			return fmt.Errorf("section %d: invalid field %d", i+1, f)
		}
	}
	if r.StrictThreshold < 0 {
		return fmt.Errorf("strict threshold must not be negative")
	}
	for _, l := range r.NameLabels {
		if _, err := regexp.Compile(`(?i)` + l); err != nil {
			return fmt.Errorf("name label %q: %w", l, err)
		}
	}
	for f, rule := range r.Fields {
		for _, l := range append(append([]string{}, rule.StartLabels...), rule.StopLabels...) {
			if _, err := regexp.Compile(`(?i)` + l); err != nil {
				return fmt.Errorf("%s label %q: %w", f, l, err)
			}
		}
	}
	return nil
}

// compileLabels builds one line-anchored pattern per label, skipping fragments
// that do not compile. prefix and suffix wrap each fragment.
func compileLabels(labels []string, prefix, suffix string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(labels))
	for _, l := range labels {
		re, err := regexp.Compile(prefix + `(?:` + l + `)` + suffix)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}
