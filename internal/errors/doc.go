// Package errors provides structured, coded errors for flashbar.
//
// Each domain failure carries a stable code (e.g. "F001") that maps to a
// short message, a detailed explanation, and a documentation URL. Codes let
// callers match failures with errors.Is without depending on message text.
//
// # Error Categories
//
// Errors are organized into categories:
//   - lookup: a message type or element could not be resolved
//   - usage: an API was called with unusable arguments
//   - localization: a text catalog problem
//   - protocol: wire protocol errors (invalid frames, unknown events)
//   - config: configuration file errors
//   - cli: command-line tool errors
//
// # Usage
//
//	err := errors.New("F001").
//	    WithSubject("myCustomError").
//	    WithSuggestion("Register the type before showing it")
//
//	fmt.Println(err.Format())
package errors
