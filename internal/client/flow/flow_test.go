package flow

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trufund/trufund/internal/client/api"
	"github.com/trufund/trufund/internal/client/session"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupSessions(t *testing.T) (*session.Manager, *session.Context, *sql.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session_state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return session.NewManager(db), session.NewContext(), db
}

func validForm() api.RegistrationForm {
	return api.RegistrationForm{
		UserID:   "alice",
		FullName: "Alice Archer",
		Email:    "alice@example.org",
		Phone:    "1234567890",
		Password: "secret1",
		Address:  "1 Main St",
		DOB:      "15/04/1992",
		Aadhar:   "123456789012",
	}
}

// ---- fake api client ----

// fakeAPI implements api.Client for flow unit tests. Optional hooks run
// inside a call, to exercise re-entrancy guards.
type fakeAPI struct {
	registerErr   error
	registerCalls int
	lastForm      api.RegistrationForm

	verifyErr     error
	verifyCalls   int
	lastVerifyTo  string
	lastVerifyOTP string

	finalizeTok   string
	finalizeErr   error
	finalizeCalls int
	lastFinalize  string

	loginRes   *api.LoginResult
	loginErr   error
	loginCalls int
	loginHook  func()

	loanErr   error
	loanCalls int
	lastLoan  api.LoanRequest
	loanHook  func()

	pingBody string
	pingErr  error
}

func (f *fakeAPI) Register(ctx context.Context, form api.RegistrationForm) error {
	f.registerCalls++
	f.lastForm = form
	return f.registerErr
}

func (f *fakeAPI) VerifyEmail(ctx context.Context, email, otp string) error {
	f.verifyCalls++
	f.lastVerifyTo, f.lastVerifyOTP = email, otp
	return f.verifyErr
}

func (f *fakeAPI) FinalizeRegistration(ctx context.Context, userID string) (string, error) {
	f.finalizeCalls++
	f.lastFinalize = userID
	return f.finalizeTok, f.finalizeErr
}

func (f *fakeAPI) Login(ctx context.Context, identifier, password string) (*api.LoginResult, error) {
	f.loginCalls++
	if f.loginHook != nil {
		f.loginHook()
	}
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) RequestLoan(ctx context.Context, req api.LoanRequest) error {
	f.loanCalls++
	f.lastLoan = req
	if f.loanHook != nil {
		f.loanHook()
	}
	return f.loanErr
}

func (f *fakeAPI) Ping(ctx context.Context) (string, error) {
	return f.pingBody, f.pingErr
}
