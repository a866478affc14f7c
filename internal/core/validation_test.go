package core

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func validForm() Form {
	return Form{Name: "Jon Jonsson", NationalID: "010101-1234", Comment: "hi"}
}

func fieldsOf(errs []ValidationError) []string {
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Form)
		wantFields []string
	}{
		{"valid", func(*Form) {}, nil},
		{"valid without dash", func(f *Form) { f.NationalID = "0101011234" }, nil},
		{"valid empty comment", func(f *Form) { f.Comment = "" }, nil},
		{"empty name", func(f *Form) { f.Name = "" }, []string{FieldName}},
		{"whitespace name", func(f *Form) { f.Name = "   \t" }, []string{FieldName}},
		{"name at limit", func(f *Form) { f.Name = strings.Repeat("a", MaxNameLength) }, nil},
		{"name over limit", func(f *Form) { f.Name = strings.Repeat("a", MaxNameLength+1) }, []string{FieldName}},
		{"multibyte name at limit", func(f *Form) { f.Name = strings.Repeat("þ", MaxNameLength) }, nil},
		{"empty national id", func(f *Form) { f.NationalID = "" }, []string{FieldNationalID, FieldNationalID}},
		{"short national id", func(f *Form) { f.NationalID = "01010-1234" }, []string{FieldNationalID}},
		{"letters in national id", func(f *Form) { f.NationalID = "01010a-1234" }, []string{FieldNationalID}},
		{"wrong separator", func(f *Form) { f.NationalID = "010101 1234" }, []string{FieldNationalID}},
		{"two dashes", func(f *Form) { f.NationalID = "010101--1234" }, []string{FieldNationalID}},
		{"surrounding spaces", func(f *Form) { f.NationalID = " 010101-1234 " }, nil},
		{"comment at limit", func(f *Form) { f.Comment = strings.Repeat("x", MaxCommentLength) }, nil},
		{"comment over limit", func(f *Form) { f.Comment = strings.Repeat("x", MaxCommentLength+1) }, []string{FieldComment}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			got := fieldsOf(Validate(f))
			if diff := cmp.Diff(tt.wantFields, got); diff != "" {
				t.Errorf("Validate() fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_ReportsEveryFailure(t *testing.T) {
	f := Form{Comment: strings.Repeat("x", MaxCommentLength+1)}

	got := Validate(f)

	want := []ValidationError{
		{Field: FieldName, Message: "Name must not be empty"},
		{Field: FieldNationalID, Message: "National ID must not be empty"},
		{Field: FieldNationalID, Message: "National ID must be of the form 000000-0000 or 0000000000"},
		{Field: FieldComment, Value: f.Comment, Message: "Comment may be at most 400 characters"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_KeepsRawValue(t *testing.T) {
	f := validForm()
	f.NationalID = " 12-34 "

	errs := Validate(f)

	if assert.Len(t, errs, 1) {
		assert.Equal(t, " 12-34 ", errs[0].Value)
		assert.Equal(t, "nationalId: National ID must be of the form 000000-0000 or 0000000000", errs[0].Error())
	}
}

func TestDecodeForm(t *testing.T) {
	values := url.Values{
		FieldName:       {"Jon", "ignored"},
		FieldNationalID: {"010101-1234"},
		FieldComment:    {"hi"},
		FieldALista:     {"on"},
		"zeta":          {"1"},
		"alpha":         {"2"},
	}

	form, errs := DecodeForm(values)

	assert.Equal(t, Form{Name: "Jon", NationalID: "010101-1234", Comment: "hi", ALista: "on"}, form)
	assert.Equal(t, []string{"alpha", "zeta"}, fieldsOf(errs))
	assert.Equal(t, "Unknown field", errs[0].Message)
}

func TestDecodeForm_MissingFieldsAreEmpty(t *testing.T) {
	form, errs := DecodeForm(url.Values{})

	assert.Equal(t, Form{}, form)
	assert.Empty(t, errs)
}

func TestHasError(t *testing.T) {
	errs := []ValidationError{{Field: FieldName}, {Field: FieldComment}}

	assert.True(t, HasError(errs, FieldName))
	assert.True(t, HasError(errs, FieldComment))
	assert.False(t, HasError(errs, FieldNationalID))
	assert.False(t, HasError(nil, FieldName))
}
