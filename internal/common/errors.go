// Package common contains shared constants and sentinel errors used across
// TruFund components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Authenticated-request errors.
	ErrUnauthenticated = errors.New("no session token")

	// Transport / response errors.
	ErrRequestFailed     = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed response")

	// Session store errors.
	ErrSessionIncomplete = errors.New("incomplete session state")

	// Flow errors.
	ErrAlreadySubmitting = errors.New("submission already in flight")
)
