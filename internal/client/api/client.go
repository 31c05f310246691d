// Package api implements the HTTP client for the TruFund backend: the
// registration/verification/login endpoints plus the authenticated calls
// made on behalf of a logged-in user.
package api

import (
	"context"
	"time"
)

// RegistrationForm carries the sign-up payload for auth/register.
// Field names match the wire contract of the backend.
type RegistrationForm struct {
	UserID   string `json:"id"`
	FullName string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
	DOB      string `json:"dob"`
	Aadhar   string `json:"aadhar"`
}

// LoanRequest is the payload for api/makeRequest.
type LoanRequest struct {
	Amount      float64   `json:"amount"`
	Incentive   float64   `json:"incentive"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
}

// LoginResult is what a successful login yields: the session token from the
// response cookie plus whatever identity fields the body carried.
type LoginResult struct {
	Token  string
	UserID string
	Email  string
}

// Client defines the calls the TruFund client makes against the backend.
//
// Contract:
//   - Register, VerifyEmail, FinalizeRegistration, Login are
//     unauthenticated; the rest require a session token and fail with
//     common.ErrUnauthenticated before any network I/O when none is set.
//   - A non-2xx response maps to common.ErrRequestFailed carrying the
//     server-provided message when the body parses.
//   - A 2xx response missing an expected field (e.g. the session cookie)
//     maps to common.ErrMalformedResponse.
//
// All methods honor context cancellation.
type Client interface {
	Register(ctx context.Context, form RegistrationForm) error
	VerifyEmail(ctx context.Context, email, otp string) error
	FinalizeRegistration(ctx context.Context, userID string) (string, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	RequestLoan(ctx context.Context, req LoanRequest) error
	Ping(ctx context.Context) (string, error)
}
