package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trufund/trufund/internal/client/session"
	"github.com/trufund/trufund/internal/client/validate"
)

func newSignup(t *testing.T, f *fakeAPI) (*Signup, *session.Manager, *session.Context) {
	t.Helper()
	mgr, sctx, _ := setupSessions(t)
	return NewSignup(f, mgr, sctx), mgr, sctx
}

// advance installs a settable clock starting at a fixed instant and
// returns a function to move it forward.
func installClock(s *Signup) func(time.Duration) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestSignup_MissingFields_BlockSubmission(t *testing.T) {
	f := &fakeAPI{}
	s, _, sctx := newSignup(t, f)

	form := validForm()
	form.Email = ""
	form.Aadhar = "12345"

	fe, err := s.Submit(context.Background(), form, "secret1")
	require.NoError(t, err)
	require.Contains(t, fe, validate.FieldEmail)
	require.Equal(t, "Enter a valid 12-digit Aadhar number", fe[validate.FieldAadhar])

	assert.Equal(t, 0, f.registerCalls)
	assert.Equal(t, SignupFormEntry, s.State())
	assert.Nil(t, sctx.Pending())
}

func TestSignup_Submit_CachesPendingAndStartsCooldown(t *testing.T) {
	f := &fakeAPI{}
	s, _, sctx := newSignup(t, f)
	installClock(s)

	fe, err := s.Submit(context.Background(), validForm(), "secret1")
	require.NoError(t, err)
	require.Empty(t, fe)

	assert.Equal(t, SignupAwaitingOtp, s.State())
	require.NotNil(t, sctx.Pending())
	assert.Equal(t, "alice", sctx.Pending().UserID)
	assert.Equal(t, "alice@example.org", sctx.Pending().Email)
	assert.Equal(t, ResendCooldown, s.ResendWait())
}

func TestSignup_Submit_ServerRejection(t *testing.T) {
	f := &fakeAPI{registerErr: errors.New("id taken")}
	s, _, sctx := newSignup(t, f)

	fe, err := s.Submit(context.Background(), validForm(), "secret1")
	require.Error(t, err)
	require.Empty(t, fe)
	assert.Equal(t, SignupFormEntry, s.State(), "failed registration stays in form entry")
	assert.Nil(t, sctx.Pending())
}

func TestSignup_Verify_RequiresSixDigits(t *testing.T) {
	f := &fakeAPI{}
	s, _, _ := newSignup(t, f)

	_, err := s.Submit(context.Background(), validForm(), "secret1")
	require.NoError(t, err)

	for _, code := range []string{"", "123", "12345", "12345a"} {
		err := s.Verify(context.Background(), code)
		require.ErrorIs(t, err, ErrOTPFormat)
	}
	assert.Equal(t, 0, f.verifyCalls, "bad codes must not reach the network")
	assert.Equal(t, SignupAwaitingOtp, s.State())
}

func TestSignup_Verify_RejectionStaysAwaitingOtp(t *testing.T) {
	f := &fakeAPI{verifyErr: errors.New("wrong code")}
	s, _, _ := newSignup(t, f)

	ctx := context.Background()
	_, err := s.Submit(ctx, validForm(), "secret1")
	require.NoError(t, err)

	err = s.Verify(ctx, "123456")
	require.Error(t, err)
	assert.Equal(t, SignupAwaitingOtp, s.State())

	// a fresh code can be entered right away
	f.verifyErr = nil
	require.NoError(t, s.Verify(ctx, "654321"))
	assert.Equal(t, SignupVerified, s.State())
	assert.Equal(t, "alice@example.org", f.lastVerifyTo)
	assert.Equal(t, "654321", f.lastVerifyOTP)
}

func TestSignup_Finalize_HappyPath(t *testing.T) {
	f := &fakeAPI{finalizeTok: "abc123"}
	s, mgr, sctx := newSignup(t, f)

	ctx := context.Background()
	_, err := s.Submit(ctx, validForm(), "secret1")
	require.NoError(t, err)
	require.NoError(t, s.Verify(ctx, "123456"))
	require.NoError(t, s.Finalize(ctx))

	assert.Equal(t, SignupFinalized, s.State())
	assert.Equal(t, "alice", f.lastFinalize)

	persisted, err := mgr.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, session.Session{Token: "abc123", UserID: "alice", Email: "alice@example.org"}, *persisted)

	require.NotNil(t, sctx.Session())
	assert.Nil(t, sctx.Pending(), "pending registration superseded by the session")
}

func TestSignup_FinalizeFailure_NoPersistedToken(t *testing.T) {
	f := &fakeAPI{finalizeErr: errors.New("expired")}
	s, mgr, sctx := newSignup(t, f)

	ctx := context.Background()
	_, err := s.Submit(ctx, validForm(), "secret1")
	require.NoError(t, err)
	require.NoError(t, s.Verify(ctx, "123456"))

	err = s.Finalize(ctx)
	require.Error(t, err)

	// verified is not durable: back to code entry
	assert.Equal(t, SignupAwaitingOtp, s.State())
	assert.Nil(t, sctx.Session())

	persisted, err := mgr.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted, "finalize failure must leave no credential state")
}

func TestSignup_Finalize_OutOfOrderRefused(t *testing.T) {
	f := &fakeAPI{finalizeTok: "abc123"}
	s, _, _ := newSignup(t, f)

	require.ErrorIs(t, s.Finalize(context.Background()), ErrInvalidState)

	_, err := s.Submit(context.Background(), validForm(), "secret1")
	require.NoError(t, err)
	require.ErrorIs(t, s.Finalize(context.Background()), ErrInvalidState)
	assert.Equal(t, 0, f.finalizeCalls)
}

func TestSignup_Resend_CooldownGate(t *testing.T) {
	f := &fakeAPI{}
	s, _, _ := newSignup(t, f)
	advance := installClock(s)

	_, err := s.Submit(context.Background(), validForm(), "secret1")
	require.NoError(t, err)

	// 30s remaining: no-op, timer unchanged
	advance(30 * time.Second)
	require.False(t, s.Resend())
	assert.Equal(t, 30*time.Second, s.ResendWait())

	// cooldown elapsed: accepted and restarted
	advance(30 * time.Second)
	require.True(t, s.Resend())
	assert.Equal(t, ResendCooldown, s.ResendWait())
}

func TestSignup_Resend_OnlyWhileAwaitingOtp(t *testing.T) {
	f := &fakeAPI{}
	s, _, _ := newSignup(t, f)

	assert.False(t, s.Resend(), "no resend before registration")
}
