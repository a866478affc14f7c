package web

// errors.go provides error responses for the web layer.
//
// The technical error is logged with the request id; the client only sees
// the message and support code from core.MapError, as an HTML error page or
// as JSON when the client asks for it.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/petition/internal/core"
	"github.com/JonMunkholm/petition/internal/logging"
	"github.com/JonMunkholm/petition/internal/web/templates"
)

// ErrorResponse is the JSON body of an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and answers with a user-friendly message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	s.logger(r).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
		return
	}

	message := "Sorry, something went wrong. " + userMsg.Action
	if statusCode < http.StatusInternalServerError {
		message = "The form could not be read. Please try again"
	}
	s.render(w, r, statusCode, templates.ErrorPage("An error occurred", message, userMsg.Code))
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) logger(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context())
}
