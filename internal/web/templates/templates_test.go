package templates

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/JonMunkholm/petition/internal/core"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestFormPage_EchoesValuesEscaped(t *testing.T) {
	out := render(t, FormPage(FormPageParams{
		Title: TitleFormErrors,
		Form:  core.Form{Name: `<script>x</script>`, NationalID: "010101-1234", Comment: `"hi"`},
		Errors: []core.ValidationError{
			{Field: core.FieldName, Message: "Name must not be empty"},
		},
	}))

	assert.Contains(t, out, "<title>Problem with registration</title>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `value="010101-1234"`)
	assert.Contains(t, out, "&#34;hi&#34;</textarea>")
	assert.Contains(t, out, `data-field="name"`)
	assert.Contains(t, out, `class="field field--invalid"><label for="name">`)
	assert.NotContains(t, out, `field--invalid"><label for="nationalId">`)
}

func TestFormPage_DefaultTitle(t *testing.T) {
	out := render(t, FormPage(FormPageParams{}))
	assert.Contains(t, out, "<h1 class=\"layout__title\">Registration</h1>")
	assert.Contains(t, out, "No signatures yet.")
}

func TestFormPage_List(t *testing.T) {
	created := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	out := render(t, FormPage(FormPageParams{List: []core.Signature{
		{ID: 1, Name: "Jon", Comment: "first", AList: true, Created: created},
		{ID: 2, Name: "Hidden", Comment: "second", AList: false, Created: created},
	}}))

	assert.Contains(t, out, "2 signatures")
	assert.Contains(t, out, "<td>Jon</td>")
	assert.Contains(t, out, "<td>Anonymous</td>")
	assert.NotContains(t, out, "Hidden")
	assert.Contains(t, out, "09.03.2024")
}

func TestFormPage_CheckboxState(t *testing.T) {
	out := render(t, FormPage(FormPageParams{Form: core.Form{ALista: "on"}}))
	assert.Contains(t, out, `name="aLista" checked>`)

	out = render(t, FormPage(FormPageParams{}))
	assert.NotContains(t, out, "checked")
}

func TestErrorPage(t *testing.T) {
	out := render(t, ErrorPage("Not found", "404 - page not found", ""))
	assert.Contains(t, out, "<title>Not found</title>")
	assert.NotContains(t, out, "Error code")

	out = render(t, ErrorPage("An error occurred", "Unable to connect", "DB001"))
	assert.Contains(t, out, "Error code: DB001")
}

func TestThanks(t *testing.T) {
	out := render(t, Thanks())
	assert.Contains(t, out, TitleThanks)
	assert.Contains(t, out, `href="/"`)
}

func TestFormPage_ListShowsStoredTextOnce(t *testing.T) {
	out := render(t, FormPage(FormPageParams{List: []core.Signature{
		{ID: 1, Name: "Jon &amp; Gunna", Comment: "a&lt;b &#34;quoted&#34;", AList: true},
	}}))

	assert.Contains(t, out, "<td>Jon &amp; Gunna</td>")
	assert.Contains(t, out, "<td>a&lt;b &#34;quoted&#34;</td>")
	assert.NotContains(t, out, "&amp;amp;")
	assert.NotContains(t, out, "&amp;lt;")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jon & Gunna", DisplayName(core.Signature{Name: "Jon &amp; Gunna", AList: true}))
	assert.Equal(t, AnonymousName, DisplayName(core.Signature{Name: "Jon", AList: false}))
}
