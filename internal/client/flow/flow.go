// Package flow implements the client's interaction flows as explicit state
// machines: login, the three-step sign-up/verify/finalize protocol, and
// loan submission. States are tagged values so impossible combinations
// (authenticated and failed at once) cannot be represented.
package flow

import "errors"

var (
	// ErrInvalidCredentials is the single user-visible login failure. The
	// transport failure, a rejected password and a malformed response all
	// collapse into it so the message never reveals whether an account
	// exists.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidState signals an operation called outside its state, e.g.
	// finalize before a successful verify.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrOTPFormat rejects a code that is not exactly six digits before
	// any network call is made.
	ErrOTPFormat = errors.New("please enter all 6 digits of your verification code")
)
