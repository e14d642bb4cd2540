package utils

import (
	"testing"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDateValue(t *testing.T) {
	cases := map[string]string{
		"12.05.2025":             "12.05.2025",
		"12/05/2025":             "12.05.2025",
		"1-5-2025":               "01.05.2025",
		"2025-05-12":             "12.05.2025",
		"12.05.25":               "12.05.2025",
		"12 May 2025":            "12.05.2025",
		"12th May, 2025":         "12.05.2025",
		"3 January 2025":         "03.01.2025",
		"12 May 25":              "12.05.2025",
		"10 Sept 2025":           "10.09.2025",
		"2 September 25":         "02.09.2025",
		"32.13.2025":             dto.NilValue,
		"Nil":                    dto.NilValue,
		"Yesterday at SP office": "Yesterday at SP office",
		"10.05.2025 at Shimla":   "10.05.2025 at Shimla",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDateValue(in), "input %q", in)
	}
}

func TestParseReportDate(t *testing.T) {
	d, ok := ParseReportDate("05/06/2024")
	assert.True(t, ok)
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, 6, int(d.Month()))

	_, ok = ParseReportDate("not a date")
	assert.False(t, ok)
}
