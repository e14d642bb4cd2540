package config

import (
	"fmt"
	"os"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/utils"
	yaml "gopkg.in/yaml.v3"
)

// RulesFile overrides parts of the built-in report vocabulary. Lists that are
// present replace the default list; absent ones keep it.
type RulesFile struct {
	StrictThreshold *int     `yaml:"strictThreshold"`
	NameLabels      []string `yaml:"nameLabels"`
	NameQuestion    string   `yaml:"nameQuestion"`
	KnownDistricts  []string `yaml:"knownDistricts"`
	NonPlaceWords   []string `yaml:"nonPlaceWords"`
	BatchDelimiters []string `yaml:"batchDelimiters"`

	// Fields is keyed by column header, e.g. "Messing Arrangements".
	Fields map[string]FieldRuleFile `yaml:"fields"`
}

type FieldRuleFile struct {
	Keywords    []string `yaml:"keywords"`
	StartLabels []string `yaml:"startLabels"`
	StopLabels  []string `yaml:"stopLabels"`
	Question    string   `yaml:"question"`
}

// LoadRules returns the default rules, overlaid with path when it is not
// empty. The result is validated.
func LoadRules(path string) (utils.Rules, error) {
	rules := utils.DefaultRules()
	if path == "" {
		return rules, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules: %w", err)
	}
	var rf RulesFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return rules, fmt.Errorf("parse rules: %w", err)
	}
	if err := ApplyRules(&rules, rf); err != nil {
		return rules, err
	}
	if err := rules.Validate(); err != nil {
		return rules, fmt.Errorf("invalid rules in %s: %w", path, err)
	}
	return rules, nil
}

// ApplyRules overlays rf onto rules.
func ApplyRules(rules *utils.Rules, rf RulesFile) error {
	if rf.StrictThreshold != nil {
		rules.StrictThreshold = *rf.StrictThreshold
	}
	if rf.NameLabels != nil {
		rules.NameLabels = rf.NameLabels
	}
	if rf.NameQuestion != "" {
		rules.NameQuestion = rf.NameQuestion
	}
	if rf.KnownDistricts != nil {
		rules.KnownDistricts = rf.KnownDistricts
	}
	if rf.NonPlaceWords != nil {
		rules.NonPlaceWords = rf.NonPlaceWords
	}
	if rf.BatchDelimiters != nil {
		rules.BatchDelimiters = rf.BatchDelimiters
	}

	for header, override := range rf.Fields {
		f, ok := dto.FieldByName(header)
		if !ok || f == dto.FieldUnitName {
			return fmt.Errorf("rules: %q is not a report section", header)
		}
		rule := rules.Rule(f)
		if override.Keywords != nil {
			rule.Keywords = override.Keywords
		}
		if override.StartLabels != nil {
			rule.StartLabels = override.StartLabels
		}
		if override.StopLabels != nil {
			rule.StopLabels = override.StopLabels
		}
		if override.Question != "" {
			rule.Question = override.Question
		}
		rules.Fields[f] = rule
	}
	return nil
}
