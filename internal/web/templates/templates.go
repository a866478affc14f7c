// Package templates renders the HTML views of the signature site.
//
// Views are templ components (*.templ, compiled to *_templ.go with
// `templ generate`). Handlers render them with Render(ctx, w) or serve them
// with templ.Handler.
package templates

import (
	"html"

	"github.com/JonMunkholm/petition/internal/core"
)

// Page titles.
const (
	TitleForm       = "Registration"
	TitleFormErrors = "Problem with registration"
	TitleThanks     = "Thank you for signing"
)

// AnonymousName is shown in the list for signers who asked to be left out.
const AnonymousName = "Anonymous"

// FormPageParams holds what the signature form page shows.
type FormPageParams struct {
	Title  string
	Form   core.Form
	Errors []core.ValidationError
	List   []core.Signature
}

func pageTitle(title string) string {
	if title == "" {
		return TitleForm
	}
	return title
}

// DisplayName is the name shown for sig in the public list.
func DisplayName(sig core.Signature) string {
	if sig.AList {
		return plainText(sig.Name)
	}
	return AnonymousName
}

// plainText undoes the escaping applied when a signature is stored; templ
// escapes it again on output.
func plainText(stored string) string {
	return html.UnescapeString(stored)
}
