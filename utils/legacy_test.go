package utils

import (
	"testing"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/stretchr/testify/assert"
)

const freeFormReport = `IRBn Daily Report
Name of Battalion: 2nd IRBn Sakoh
Details of reserves deployed: 1 Coy Distt Kangra
Strength 80, In-charge Insp Sham
Stay arrangements: Good, bathrooms clean
Messing: Satisfactory
Last interaction with SP: 05/05/2025
Disciplinary issues: nil
Training: PT and drill
Welfare: Yoga session
Reserves available: 0
Any other issue: Need tents
`

func TestLegacyExtractorFreeForm(t *testing.T) {
	rec := NewLegacyExtractor(DefaultRules()).Extract(freeFormReport)

	assert.Equal(t, "2nd IRBn Sakoh", rec.Get(dto.FieldUnitName))
	assert.Equal(t, "1 Coy Distt Kangra Strength 80, In-charge Insp Sham", rec.Get(dto.FieldReservesDeployed))
	assert.Equal(t, "Kangra, Sakoh", rec.Get(dto.FieldDistricts))
	assert.Equal(t, "Good, bathrooms clean", rec.Get(dto.FieldStay))
	assert.Equal(t, "Satisfactory", rec.Get(dto.FieldMessing))
	assert.Equal(t, "05.05.2025", rec.Get(dto.FieldCOInteraction))
	assert.Equal(t, dto.NilValue, rec.Get(dto.FieldDisciplinary))
	assert.Equal(t, dto.NilValue, rec.Get(dto.FieldDetained))
	assert.Equal(t, "PT and drill", rec.Get(dto.FieldTraining))
	assert.Equal(t, "Yoga session", rec.Get(dto.FieldWelfare))
	assert.Equal(t, "0", rec.Get(dto.FieldReservesAvailable))
	assert.Equal(t, "Need tents", rec.Get(dto.FieldIssue))
}

func TestLegacyExtractorZeroReserves(t *testing.T) {
	rec := NewLegacyExtractor(DefaultRules()).Extract("Reserves available: 0\n")

	assert.Equal(t, "0", rec.Get(dto.FieldReservesAvailable))
	assert.Equal(t, dto.NilValue, rec.Get(dto.FieldReservesDeployed))
	assert.Equal(t, dto.NilValue, rec.Get(dto.FieldDetained))
}

func TestLegacyExtractorStopsAtBulletsAndNumbers(t *testing.T) {
	text := "Training: Firing\n- range closed\nWelfare: Sports meet\n3. Something else\n"

	rec := NewLegacyExtractor(DefaultRules()).Extract(text)

	assert.Equal(t, "Firing", rec.Get(dto.FieldTraining))
	assert.Equal(t, "Sports meet", rec.Get(dto.FieldWelfare))
}

func TestLegacyExtractorLabelOnItsOwnLine(t *testing.T) {
	text := "Messing arrangements:\nGood quality food\nTraining - Nil\n"

	rec := NewLegacyExtractor(DefaultRules()).Extract(text)

	assert.Equal(t, "Good quality food", rec.Get(dto.FieldMessing))
	assert.Equal(t, dto.NilValue, rec.Get(dto.FieldTraining))
}

func TestLegacyExtractorNothingMatches(t *testing.T) {
	rec := NewLegacyExtractor(DefaultRules()).Extract("all quiet today")

	for _, v := range rec.Values() {
		assert.Equal(t, dto.NilValue, v)
	}
}
