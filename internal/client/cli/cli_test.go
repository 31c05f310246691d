package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/trufund/trufund/internal/client/api"
	"github.com/trufund/trufund/internal/client/flow"
	"github.com/trufund/trufund/internal/client/session"
	"github.com/trufund/trufund/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupSessions(t *testing.T) (*session.Manager, *session.Context) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session_state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return session.NewManager(db), session.NewContext()
}

// newTestApp builds an App around a fake API client, with output captured
// in the returned buffer.
func newTestApp(t *testing.T, f api.Client) (*App, *bytes.Buffer) {
	t.Helper()
	sessions, sctx := setupSessions(t)
	out := &bytes.Buffer{}
	a := &App{
		log:      logging.NewTextLogger(io.Discard, slog.LevelInfo),
		apiCli:   f,
		sessions: sessions,
		sctx:     sctx,
		login:    flow.NewLogin(f, sessions, sctx, false),
		loans:    flow.NewLoan(f),
		Mode:     ModeUnknown,
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      out,
	}
	return a, out
}

// stubInputs queues answers for getSimpleText and getPassword, in the order
// the commands ask for them. Restores the real helpers on test cleanup.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
}

// ---- fake api client ----

type fakeAPI struct {
	registerErr   error
	registerCalls int
	lastForm      api.RegistrationForm

	verifyErr     error
	verifyCalls   int
	lastVerifyOTP string

	finalizeTok   string
	finalizeErr   error
	finalizeCalls int

	loginRes   *api.LoginResult
	loginErr   error
	loginCalls int

	loanErr   error
	loanCalls int
	lastLoan  api.LoanRequest

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
	f.lastVerifyOTP = otp
	return f.verifyErr
}

func (f *fakeAPI) FinalizeRegistration(ctx context.Context, userID string) (string, error) {
	f.finalizeCalls++
	return f.finalizeTok, f.finalizeErr
}

func (f *fakeAPI) Login(ctx context.Context, identifier, password string) (*api.LoginResult, error) {
	f.loginCalls++
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) RequestLoan(ctx context.Context, req api.LoanRequest) error {
	f.loanCalls++
	f.lastLoan = req
	return f.loanErr
}

func (f *fakeAPI) Ping(ctx context.Context) (string, error) {
	return f.pingBody, f.pingErr
}
