package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRulesDefault(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultRules().StrictThreshold, rules.StrictThreshold)
}

func TestLoadRulesOverlay(t *testing.T) {
	path := writeRules(t, `
strictThreshold: 8
knownDistricts: [Rampur, Chopal]
fields:
  "Messing Arrangements":
    keywords: [mess, langar]
    question: How is the langar?
`)

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 8, rules.StrictThreshold)
	assert.Equal(t, []string{"Rampur", "Chopal"}, rules.KnownDistricts)

	messing := rules.Rule(dto.FieldMessing)
	assert.Equal(t, []string{"mess", "langar"}, messing.Keywords)
	assert.Equal(t, "How is the langar?", messing.Question)
	// untouched lists keep their defaults
	assert.Equal(t, utils.DefaultRules().Rule(dto.FieldMessing).StartLabels, messing.StartLabels)
	assert.Equal(t, utils.DefaultRules().BatchDelimiters, rules.BatchDelimiters)
}

func TestLoadRulesRejectsUnknownField(t *testing.T) {
	_, err := LoadRules(writeRules(t, "fields:\n  Weather:\n    keywords: [rain]\n"))
	assert.Error(t, err)

	_, err = LoadRules(writeRules(t, "fields:\n  \"Name of IRBn/Bn\":\n    keywords: [unit]\n"))
	assert.Error(t, err)
}

func TestLoadRulesRejectsBadPattern(t *testing.T) {
	_, err := LoadRules(writeRules(t, "nameLabels: ['Name(']\n"))
	assert.Error(t, err)

	_, err = LoadRules(writeRules(t, "strictThreshold: -1\n"))
	assert.Error(t, err)
}
