package utils

import (
	"testing"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shuffledReport = `Unit No. and Location: 1st IRBn, Jangalberi
1. Training conducted: Drill and PT
2. Reserves available: 45
3. Force deployment details: 2 Coy at Kullu, In-charge: SI Mohan
4. Mess & food: Good
5. Any other concern: None
`

func TestSmartExtractorReorderedLabels(t *testing.T) {
	rec := NewSmartExtractor(DefaultRules()).Extract(shuffledReport)

	assert.Equal(t, "1st IRBn, Jangalberi", rec.Get(dto.FieldUnitName))
	assert.Equal(t, "Drill and PT", rec.Get(dto.FieldTraining))
	assert.Equal(t, "45", rec.Get(dto.FieldReservesAvailable))
	assert.Equal(t, "2 Coy at Kullu, In-charge: SI Mohan", rec.Get(dto.FieldReservesDeployed))
	assert.Equal(t, "Good", rec.Get(dto.FieldMessing))
	assert.Equal(t, dto.NilValue, rec.Get(dto.FieldIssue))
	// no districts section: derived from the whole text
	assert.Equal(t, "Jangalberi, Kullu", rec.Get(dto.FieldDistricts))
	assert.Equal(t, 5, rec.FillCount())
}

func TestSmartExtractorClassify(t *testing.T) {
	e := NewSmartExtractor(DefaultRules())

	cases := map[string]dto.Field{
		"Reserves Deployed (Distt/Strength/Duration/In-Charge)": dto.FieldReservesDeployed,
		"Districts where force deployed":                        dto.FieldDistricts,
		"Stay Arrangement/Bathrooms (Quality)":                  dto.FieldStay,
		"CO's last Interaction with SP":                         dto.FieldCOInteraction,
		"Reserves Detained":                                     dto.FieldDetained,
		"Welfare Initiative in Last 24 Hrs":                     dto.FieldWelfare,
		"Reserves Available in Bn":                              dto.FieldReservesAvailable,
		"Issue for AP&T/PHQ":                                    dto.FieldIssue,
		// tie between disciplinary and issue goes to the earlier field
		"Disciplinary Issues": dto.FieldDisciplinary,
		// bare "Reserves" ties three fields; deployed comes first
		"Reserves": dto.FieldReservesDeployed,
		// misspelt
		"Trainng": dto.FieldTraining,
	}
	for label, want := range cases {
		got, ok := e.classify(label)
		require.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	_, ok := e.classify("Miscellaneous remarks")
	assert.False(t, ok)

	// short keywords do not match as prefixes of longer words
	for _, label := range []string{"Message from CO", "Special remarks", "Method of work"} {
		_, ok := e.classify(label)
		assert.False(t, ok, label)
	}
}

func TestSmartExtractorShortKeywordsNeedWholeWords(t *testing.T) {
	text := "1. Sports and recreation: Volleyball match\n2. Message from CO: All well\n3. Mess & food: Good\n"

	rec := NewSmartExtractor(DefaultRules()).Extract(text)

	assert.Equal(t, "Volleyball match", rec.Get(dto.FieldWelfare))
	assert.Equal(t, dto.NilValue, rec.Get(dto.FieldCOInteraction))
	assert.Equal(t, "Good", rec.Get(dto.FieldMessing))
}

func TestSmartExtractorKeepsEarlierValueOverNil(t *testing.T) {
	text := "1. Training: PT parade\n2. Drill: Nil\n"

	rec := NewSmartExtractor(DefaultRules()).Extract(text)

	assert.Equal(t, "PT parade", rec.Get(dto.FieldTraining))
}

func TestSmartExtractorDropsUnscoredSections(t *testing.T) {
	text := "1. Remarks: all well\n2. Districts: Una\n"

	rec := NewSmartExtractor(DefaultRules()).Extract(text)

	assert.Equal(t, 1, rec.FillCount())
	assert.Equal(t, "Una", rec.Get(dto.FieldDistricts))
}
