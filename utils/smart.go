package utils

import (
	"strings"
	"unicode"

	"github.com/Aashish23092/irbn-report-extractor/dto"
)

// fuzzyWordThreshold is the similarity above which a misspelt label word
// still counts as a keyword hit.
const fuzzyWordThreshold = 0.85

// shortKeywordLen is the longest keyword that only matches a whole word.
const shortKeywordLen = 4

// SmartExtractor handles numbered reports whose labels were reworded,
// reordered or abbreviated: each section goes to the field whose keywords the
// label hits most often.
type SmartExtractor struct {
	keywords  map[dto.Field][]string
	name      nameMatcher
	districts *DistrictDeriver
}

// NewSmartExtractor builds a keyword-scoring extractor over rules.
func NewSmartExtractor(rules Rules) *SmartExtractor {
	kw := make(map[dto.Field][]string, len(rules.Fields))
	for f, rule := range rules.Fields {
		for _, k := range rule.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kw[f] = append(kw[f], k)
			}
		}
	}
	return &SmartExtractor{
		keywords:  kw,
		name:      newNameMatcher(rules.NameLabels),
		districts: NewDistrictDeriver(rules),
	}
}

// Name identifies the strategy in logs and results.
func (e *SmartExtractor) Name() string { return "smart" }

// Extract assigns sections by label score. A later section only replaces an
// earlier value for the same field when it carries something.
func (e *SmartExtractor) Extract(text string) dto.ReportRecord {
	rec := dto.NewReportRecord()
	rec.Set(dto.FieldUnitName, e.name.find(text))

	for _, s := range scanSections(text) {
		f, ok := e.classify(s.Label)
		if !ok {
			continue
		}
		v := Normalize(s.Body)
		if v == dto.NilValue && rec.Get(f) != dto.NilValue {
			continue
		}
		rec.Set(f, v)
	}

	if rec.Get(dto.FieldDistricts) == dto.NilValue {
		rec.Set(dto.FieldDistricts, e.districts.Derive(text))
	}

	finalize(&rec)
	return rec
}

// classify returns the body field with the highest keyword score for label.
// Ties go to the field that comes first in the schema; a zero score drops the section.
func (e *SmartExtractor) classify(label string) (dto.Field, bool) {
	lower := strings.ToLower(label)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	best, bestScore := dto.Field(0), 0
	for _, f := range dto.BodyFields() {
		score := 0
		for _, kw := range e.keywords[f] {
			if keywordHit(kw, lower, words) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = f, score
		}
	}
	return best, bestScore > 0
}

// keywordHit matches plain keywords as word prefixes (tolerating small
// misspellings) and punctuated keywords such as "in-charge" as substrings.
// Keywords up to shortKeywordLen letters ("sp", "met", "mess") must be the
// whole word, optionally plural.
func keywordHit(kw, label string, words []string) bool {
	if strings.IndexFunc(kw, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
		return strings.Contains(label, kw)
	}
	short := len(kw) <= shortKeywordLen
	for _, w := range words {
		if short {
			if w == kw || w == kw+"s" {
				return true
			}
			continue
		}
		if strings.HasPrefix(w, kw) {
			return true
		}
		if len(kw) >= 5 && len(w) >= 5 && wordSimilarity(w, kw) >= fuzzyWordThreshold {
			return true
		}
	}
	return false
}
