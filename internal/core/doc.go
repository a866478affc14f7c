// Package core holds the petition domain: the Signature record, the rules a
// submitted form must satisfy, the sanitization applied before storage and
// the submission pipeline that ties them to a Store.
//
// # Submission pipeline
//
// A submitted form moves through explicit stages instead of chained
// middleware:
//
//	AwaitingSubmission -> Validating -> Invalid
//	                                 -> Sanitizing -> Persisting -> Redirected
//
// Invalid and Redirected are terminal. Invalid carries the validation errors
// and the form exactly as submitted so the caller can render it again. A
// failure while persisting is returned as an error wrapping [ErrPersistence].
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Each
// message has a code for support reference:
//
//   - DB001-DB005: database connectivity and schema errors
//   - REQ001-REQ002: cancelled or timed out requests
//   - ERR000: anything else
package core
