package core

// error_messages.go maps technical errors to messages that are safe to show
// on the error page. The technical error is only ever logged.
//
// # Codes
//
//	DB001 - Unable to connect to the database
//	        Patterns: "connection refused", "no such host"
//	DB002 - Database connection was interrupted
//	        Patterns: "connection reset", "unexpected eof"
//	DB003 - Database is not accepting more connections
//	        Patterns: "too many clients"
//	DB004 - Signature storage is not set up
//	        Patterns: "does not exist" (missing relation)
//	DB005 - Database operation timed out
//	        Patterns: "timeout"
//	REQ001 - Request was cancelled
//	        Patterns: "context canceled"
//	REQ002 - Request timed out
//	        Patterns: "context deadline exceeded"
//	ERR000 - Fallback when nothing matches
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgConnect = UserMessage{
		Message: "Unable to connect to the database",
		Action:  "Please try again in a few moments",
		Code:    "DB001",
	}
	msgInterrupted = UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB002",
	}
)

var errorPatterns = []errorPattern{
	{pattern: "connection refused", msg: msgConnect},
	{pattern: "no such host", msg: msgConnect},
	{pattern: "connection reset", msg: msgInterrupted},
	{pattern: "unexpected eof", msg: msgInterrupted},
	{
		pattern: "too many clients",
		msg: UserMessage{
			Message: "The database is busy",
			Action:  "Please try again in a few moments",
			Code:    "DB003",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "Signature storage is not set up",
			Action:  "Contact the site operator",
			Code:    "DB004",
		},
	},
	// Checked before "timeout" so request deadlines keep their own code.
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Database operation timed out",
			Action:  "Please try again later",
			Code:    "DB005",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again later",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. A nil error
// maps to the zero UserMessage; an unrecognised one to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
