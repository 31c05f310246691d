package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/trufund/trufund/internal/client/api"
	"github.com/trufund/trufund/internal/client/session"
	"github.com/trufund/trufund/internal/client/validate"
	"github.com/trufund/trufund/internal/common"
)

type SignupState string

const (
	SignupFormEntry   SignupState = "form_entry"
	SignupAwaitingOtp SignupState = "awaiting_otp"
	SignupVerified    SignupState = "verified"
	SignupFinalized   SignupState = "finalized"
)

// ResendCooldown is how long the resend-code action stays disabled after
// registration and after each resend.
const ResendCooldown = 60 * time.Second

// Signup drives the three-step registration protocol:
//
//	FormEntry -> AwaitingOtp -> Verified -> Finalized
//
// A rejected verify stays in AwaitingOtp; a failed finalize falls back to
// AwaitingOtp as well, since the server may have invalidated the code and a
// fresh one must be entered. Verified is deliberately not durable.
type Signup struct {
	api      api.Client
	sessions *session.Manager
	sctx     *session.Context
	state    SignupState

	submitting    bool
	resendAllowed time.Time

	// now is a clock seam for cooldown tests.
	now func() time.Time
}

func NewSignup(apiClient api.Client, sessions *session.Manager, sctx *session.Context) *Signup {
	return &Signup{
		api:      apiClient,
		sessions: sessions,
		sctx:     sctx,
		state:    SignupFormEntry,
		now:      time.Now,
	}
}

func (f *Signup) State() SignupState { return f.state }

// Submit validates the whole form and registers the account. All field
// errors are collected in one pass; any of them blocks the request. On
// acceptance the user id and email are cached in the session context for
// the verify and finalize steps and the resend cooldown starts.
func (f *Signup) Submit(ctx context.Context, form api.RegistrationForm, confirmPassword string) (validate.FieldErrors, error) {
	if f.state != SignupFormEntry {
		return nil, ErrInvalidState
	}
	if f.submitting {
		return nil, common.ErrAlreadySubmitting
	}

	if fe := validate.SignUp(form, confirmPassword); !fe.Valid() {
		return fe, nil
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	if err := f.api.Register(ctx, form); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	f.sctx.SetPending(session.PendingRegistration{UserID: form.UserID, Email: form.Email})
	f.resendAllowed = f.now().Add(ResendCooldown)
	f.state = SignupAwaitingOtp
	return nil, nil
}

// Verify submits the one-time code. A code that is not exactly six digits
// is rejected locally. On server rejection the flow stays in AwaitingOtp;
// the caller clears the entered code and resets input focus.
func (f *Signup) Verify(ctx context.Context, code string) error {
	if f.state != SignupAwaitingOtp {
		return ErrInvalidState
	}
	if f.submitting {
		return common.ErrAlreadySubmitting
	}
	if !validate.OTP(code) {
		return ErrOTPFormat
	}

	pending := f.sctx.Pending()
	if pending == nil {
		return ErrInvalidState
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	if err := f.api.VerifyEmail(ctx, pending.Email, code); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	f.state = SignupVerified
	return nil
}

// Finalize exchanges the verified registration for a session token. On
// success the session is persisted all-or-nothing and the pending state is
// discarded. On failure the flow falls back to AwaitingOtp and no session
// state is left behind.
func (f *Signup) Finalize(ctx context.Context) error {
	if f.state != SignupVerified {
		return ErrInvalidState
	}

	pending := f.sctx.Pending()
	if pending == nil {
		return ErrInvalidState
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	token, err := f.api.FinalizeRegistration(ctx, pending.UserID)
	if err != nil {
		f.state = SignupAwaitingOtp
		return fmt.Errorf("finalize failed: %w", err)
	}

	s := session.Session{Token: token, UserID: pending.UserID, Email: pending.Email}
	if err := f.sessions.Save(ctx, s); err != nil {
		f.state = SignupAwaitingOtp
		return fmt.Errorf("failed to persist session: %w", err)
	}

	f.sctx.SetSession(s)
	f.sctx.ClearPending()
	f.state = SignupFinalized
	return nil
}

// ResendWait returns how long until resend is allowed again; zero means it
// is available now.
func (f *Signup) ResendWait() time.Duration {
	d := f.resendAllowed.Sub(f.now())
	if d < 0 {
		return 0
	}
	return d
}

// Resend restarts the cooldown and reports whether the request was
// accepted. During the cooldown it is a no-op returning false, leaving the
// timer unchanged. A code already in flight stays valid unless the server
// decides otherwise; the new one arrives out-of-band.
func (f *Signup) Resend() bool {
	if f.state != SignupAwaitingOtp {
		return false
	}
	if f.now().Before(f.resendAllowed) {
		return false
	}
	f.resendAllowed = f.now().Add(ResendCooldown)
	return true
}
