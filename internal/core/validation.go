package core

// validation.go checks a decoded Form against the fixed signature rules.
//
// Every rule is evaluated; a failing rule never hides the result of another,
// so the form can show all problems at once. Values are trimmed before they
// are checked and lengths are counted in characters, not bytes.

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLength is the longest accepted name, in characters.
	MaxNameLength = 128

	// MaxCommentLength is the longest accepted comment, in characters.
	MaxCommentLength = 400
)

// nationalIDPattern accepts 000000-0000 and 0000000000.
var nationalIDPattern = regexp.MustCompile(`^[0-9]{6}-?[0-9]{4}$`)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Form field name
	Value   string // The rejected value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// rule is one field constraint. ok reports whether the trimmed value passes.
type rule struct {
	field   string
	value   func(Form) string
	ok      func(string) bool
	message string
}

func nameOf(f Form) string       { return f.Name }
func nationalIDOf(f Form) string { return f.NationalID }
func commentOf(f Form) string    { return f.Comment }

func notEmpty(s string) bool { return s != "" }

func maxLength(n int) func(string) bool {
	return func(s string) bool { return utf8.RuneCountInString(s) <= n }
}

// rules is evaluated in order; the order is the order errors are reported in.
var rules = []rule{
	{FieldName, nameOf, notEmpty, "Name must not be empty"},
	{FieldName, nameOf, maxLength(MaxNameLength), fmt.Sprintf("Name may be at most %d characters", MaxNameLength)},
	{FieldNationalID, nationalIDOf, notEmpty, "National ID must not be empty"},
	{FieldNationalID, nationalIDOf, nationalIDPattern.MatchString, "National ID must be of the form 000000-0000 or 0000000000"},
	{FieldComment, commentOf, maxLength(MaxCommentLength), fmt.Sprintf("Comment may be at most %d characters", MaxCommentLength)},
}

// Validate applies every rule to f and returns the failures in rule order.
// An empty result means the form is valid.
func Validate(f Form) []ValidationError {
	var errs []ValidationError
	for _, r := range rules {
		raw := r.value(f)
		if !r.ok(strings.TrimSpace(raw)) {
			errs = append(errs, ValidationError{
				Field:   r.field,
				Value:   raw,
				Message: r.message,
			})
		}
	}
	return errs
}

// DecodeForm builds a Form from submitted values. Fields other than the four
// known ones are reported as errors, sorted by name. Only the first value of
// a repeated field is used.
func DecodeForm(values url.Values) (Form, []ValidationError) {
	f := Form{
		Name:       values.Get(FieldName),
		NationalID: values.Get(FieldNationalID),
		Comment:    values.Get(FieldComment),
		ALista:     values.Get(FieldALista),
	}

	var unknown []string
	for key := range values {
		switch key {
		case FieldName, FieldNationalID, FieldComment, FieldALista:
		default:
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	var errs []ValidationError
	for _, key := range unknown {
		errs = append(errs, ValidationError{
			Field:   key,
			Value:   values.Get(key),
			Message: "Unknown field",
		})
	}
	return f, errs
}

// HasError reports whether errs contains an error for field. Views use it to
// mark invalid inputs.
func HasError(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
