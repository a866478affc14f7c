package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/petition/internal/core"
	"github.com/JonMunkholm/petition/internal/web/templates"
	"github.com/a-h/templ"
)

// handleForm renders the empty form and the current signatures.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.List(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.render(w, r, http.StatusOK, templates.FormPage(templates.FormPageParams{
		Title: templates.TitleForm,
		List:  list,
	}))
}

// handleSubmit runs a posted form through the submission pipeline. An
// invalid form is shown again with the values as submitted; a stored one
// redirects to the thank-you page.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.FormMaxBytes)
	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(w, r, err, http.StatusRequestEntityTooLarge)
			return
		}
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	sub, err := s.service.Submit(ctx, r.PostForm)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if sub.Stage == core.StageInvalid {
		list, err := s.service.List(ctx)
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		s.render(w, r, http.StatusOK, templates.FormPage(templates.FormPageParams{
			Title:  templates.TitleFormErrors,
			Form:   sub.Form,
			Errors: sub.Errors,
			List:   list,
		}))
		return
	}

	http.Redirect(w, r, "/thanks", http.StatusFound)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound,
		templates.ErrorPage("Page not found", "404 - this page could not be found", ""))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		s.logger(r).Error("render failed", "error", err)
	}
}
