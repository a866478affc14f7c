package core

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy removes every tag, drops the content of script and style
// elements and escapes what is left. A bluemonday policy is safe for
// concurrent use once built.
var textPolicy = bluemonday.StrictPolicy()

// tagPattern matches what is treated as markup: complete tags and comments.
// Any other "<" is literal text and is escaped before the policy runs, so
// "a<b" keeps its "b".
var tagPattern = regexp.MustCompile(`<(?:!--[\s\S]*?-->|[/!]?[a-zA-Z][^<>]*>)`)

// Sanitize returns the form with markup stripped from its free-text fields
// and surrounding whitespace removed. Invalid UTF-8 becomes U+FFFD and
// control characters other than tab and line breaks are dropped, since the
// database rejects both. The national ID is reduced to its digits. ALista is
// passed through untouched.
//
// The result is HTML-escaped text, which is what gets stored.
func Sanitize(f Form) Form {
	return Form{
		Name:       sanitizeText(f.Name),
		NationalID: digitsOnly(sanitizeText(f.NationalID)),
		Comment:    sanitizeText(f.Comment),
		ALista:     f.ALista,
	}
}

func sanitizeText(s string) string {
	s = strings.TrimSpace(dropControl(strings.ToValidUTF8(s, "\uFFFD")))
	return strings.TrimSpace(textPolicy.Sanitize(escapeStrayLT(s)))
}

func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}

func escapeStrayLT(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range tagPattern.FindAllStringIndex(s, -1) {
		b.WriteString(strings.ReplaceAll(s[last:loc[0]], "<", "&lt;"))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(strings.ReplaceAll(s[last:], "<", "&lt;"))
	return b.String()
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < utf8.RuneSelf {
			return r
		}
		return -1
	}, s)
}

// NewSignature builds the record to store from a sanitized form and checks
// the invariants that must hold at persistence time. Sanitizing can empty a
// field that passed validation (a name made only of markup), so those
// failures are reported as validation errors too.
//
// Lengths are measured on the unescaped text so that escaping does not push
// an accepted value over its limit.
func NewSignature(sanitized Form) (Signature, []ValidationError) {
	var errs []ValidationError

	nameLen := utf8.RuneCountInString(html.UnescapeString(sanitized.Name))
	switch {
	case nameLen == 0:
		errs = append(errs, ValidationError{Field: FieldName, Value: sanitized.Name, Message: "Name must not be empty"})
	case nameLen > MaxNameLength:
		errs = append(errs, ValidationError{Field: FieldName, Value: sanitized.Name, Message: "Name is too long"})
	}

	if len(sanitized.NationalID) != 10 {
		errs = append(errs, ValidationError{Field: FieldNationalID, Value: sanitized.NationalID, Message: "National ID must contain 10 digits"})
	}

	if utf8.RuneCountInString(html.UnescapeString(sanitized.Comment)) > MaxCommentLength {
		errs = append(errs, ValidationError{Field: FieldComment, Value: sanitized.Comment, Message: "Comment is too long"})
	}

	if len(errs) > 0 {
		return Signature{}, errs
	}

	return Signature{
		Name:       sanitized.Name,
		NationalID: sanitized.NationalID,
		Comment:    sanitized.Comment,
		AList:      sanitized.ALista == "",
	}, nil
}
