package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Field identifies one column of the consolidated report.
type Field int

const (
	FieldUnitName Field = iota
	FieldReservesDeployed
	FieldDistricts
	FieldStay
	FieldMessing
	FieldCOInteraction
	FieldDisciplinary
	FieldDetained
	FieldTraining
	FieldWelfare
	FieldReservesAvailable
	FieldIssue

	FieldCount
)

const (
	// NilValue marks a field for which nothing was extracted.
	NilValue = "Nil"
	// ZeroValue is the canonical form of an explicit zero.
	ZeroValue = "0"
)

var fieldNames = [FieldCount]string{
	"Name of IRBn/Bn",
	"Reserves Deployed (Distt/Strength/Duration/In-Charge)",
	"Districts where force deployed",
	"Stay Arrangement/Bathrooms (Quality)",
	"Messing Arrangements",
	"CO's last Interaction with SP",
	"Disciplinary Issues",
	"Reserves Detained",
	"Training",
	"Welfare Initiative in Last 24 Hrs",
	"Reserves Available in Bn",
	"Issue for AP&T/PHQ",
}

// String returns the column header of the field.
func (f Field) String() string {
	if !f.Valid() {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// Valid reports whether f is one of the schema fields.
func (f Field) Valid() bool {
	return f >= 0 && f < FieldCount
}

// Fields returns every schema field in canonical order.
func Fields() []Field {
	out := make([]Field, 0, FieldCount)
	for f := Field(0); f < FieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// BodyFields returns the eleven numbered-section fields, i.e. everything but the unit name.
func BodyFields() []Field {
	return Fields()[1:]
}

// Columns returns the header text of every field in canonical order.
func Columns() []string {
	out := make([]string, FieldCount)
	copy(out, fieldNames[:])
	return out
}

// FieldByName resolves a column header (case-insensitive) to its field.
func FieldByName(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for f, n := range fieldNames {
		if strings.EqualFold(n, name) {
			return Field(f), true
		}
	}
	return 0, false
}

// ReportRecord is one row of the consolidated report: exactly one value per
// schema field. Unset fields read as NilValue.
type ReportRecord struct {
	values [FieldCount]string
}

// NewReportRecord returns a record with every field set to NilValue.
func NewReportRecord() ReportRecord {
	var r ReportRecord
	for i := range r.values {
		r.values[i] = NilValue
	}
	return r
}

// Get returns the value of field f.
func (r ReportRecord) Get(f Field) string {
	if !f.Valid() {
		return NilValue
	}
	if v := r.values[f]; v != "" {
		return v
	}
	return NilValue
}

// Set stores v for field f. Blank values are stored as NilValue.
func (r *ReportRecord) Set(f Field, v string) {
	if !f.Valid() {
		return
	}
	if strings.TrimSpace(v) == "" {
		v = NilValue
	}
	r.values[f] = v
}

// Values returns the field values in canonical order.
func (r ReportRecord) Values() []string {
	out := make([]string, FieldCount)
	for f := Field(0); f < FieldCount; f++ {
		out[f] = r.Get(f)
	}
	return out
}

// FillCount is the number of body fields holding something other than NilValue.
func (r ReportRecord) FillCount() int {
	n := 0
	for _, f := range BodyFields() {
		if r.Get(f) != NilValue {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the record as an object whose keys keep schema order.
func (r ReportRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for f := Field(0); f < FieldCount; f++ {
		if f > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.String())
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Get(f))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the object produced by MarshalJSON. Unknown keys are ignored
// and missing keys read as NilValue.
func (r *ReportRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NewReportRecord()
	for k, v := range raw {
		if f, ok := FieldByName(k); ok {
			r.Set(f, v)
		}
	}
	return nil
}
