// Package errors provides structured, actionable errors for the sticky
// server and CLI.
//
// Each error has a code (e.g., "E101") that maps to a category, a short
// message and a longer explanation:
//
//	err := errors.New("E101").
//	    WithDetail("top offset -3 is negative").
//	    WithSuggestion("Use 0 to stick flush with the viewport top")
//
//	fmt.Println(err.Format())
//
// Codes E1xx are configuration errors, E2xx wire protocol errors and E3xx
// command-line errors.
package errors
