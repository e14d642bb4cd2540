package utils

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Aashish23092/irbn-report-extractor/dto"
)

var (
	// "District Shimla", "Distt. Mandi", "DISTT KULLU"
	districtLabelRe = regexp.MustCompile(`\b(?i:district|distt)\.?[ \t]*[:\-]?[ \t]*([A-Z][A-Za-z]+)`)
	// "Shimla: 30" rows of a deployment table
	placeCountRe = regexp.MustCompile(`(?m)^[ \t]*([A-Z][a-z]+)[ \t]*:[ \t]*\d`)
)

// DistrictDeriver mines place names from report text when no explicit
// districts section exists.
type DistrictDeriver struct {
	gazetteer *regexp.Regexp
	canonical map[string]string
	nonPlace  map[string]bool
}

// NewDistrictDeriver builds a deriver over the rules' gazetteer and label words.
func NewDistrictDeriver(rules Rules) *DistrictDeriver {
	d := &DistrictDeriver{
		canonical: make(map[string]string, len(rules.KnownDistricts)),
		nonPlace:  make(map[string]bool, len(rules.NonPlaceWords)),
	}
	for _, w := range rules.NonPlaceWords {
		d.nonPlace[strings.ToLower(w)] = true
	}

	quoted := make([]string, 0, len(rules.KnownDistricts))
	for _, name := range rules.KnownDistricts {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		d.canonical[strings.ToLower(name)] = name
		quoted = append(quoted, regexp.QuoteMeta(name))
	}
	if len(quoted) > 0 {
		d.gazetteer = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	return d
}

// Derive returns the sorted, de-duplicated place names found in text joined
// with ", ", or Nil when there are none.
func (d *DistrictDeriver) Derive(text string) string {
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || d.nonPlace[strings.ToLower(name)] {
			return
		}
		if known, ok := d.canonical[strings.ToLower(name)]; ok {
			name = known
		}
		seen[name] = true
	}

	for _, m := range districtLabelRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range placeCountRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	if d.gazetteer != nil {
		for _, m := range d.gazetteer.FindAllString(text, -1) {
			add(d.canonical[strings.ToLower(m)])
		}
	}

	if len(seen) == 0 {
		return dto.NilValue
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// DeriveDistricts runs a deriver built from DefaultRules.
func DeriveDistricts(text string) string {
	return NewDistrictDeriver(DefaultRules()).Derive(text)
}
