package flow

import (
	"context"
	"fmt"

	"github.com/trufund/trufund/internal/client/api"
	"github.com/trufund/trufund/internal/client/session"
	"github.com/trufund/trufund/internal/client/validate"
	"github.com/trufund/trufund/internal/common"
)

type LoginState string

const (
	LoginIdle          LoginState = "idle"
	LoginSubmitting    LoginState = "submitting"
	LoginAuthenticated LoginState = "authenticated"
	LoginFailed        LoginState = "failed"
)

// Login drives Idle -> Submitting -> {Authenticated, Failed}. A failed
// attempt is re-enterable; a second submission while one is in flight is
// refused (the double-tap guard from the UI, since requests cannot be
// cancelled once sent).
type Login struct {
	api         api.Client
	sessions    *session.Manager
	sctx        *session.Context
	strictEmail bool
	state       LoginState
}

func NewLogin(apiClient api.Client, sessions *session.Manager, sctx *session.Context, strictEmail bool) *Login {
	return &Login{
		api:         apiClient,
		sessions:    sessions,
		sctx:        sctx,
		strictEmail: strictEmail,
		state:       LoginIdle,
	}
}

func (f *Login) State() LoginState { return f.state }

// Submit validates the credentials and, when they pass, performs the login
// call. Field errors are returned without any network I/O. On success the
// token and user data are persisted together and the in-memory context
// updated; any remote failure surfaces as ErrInvalidCredentials.
func (f *Login) Submit(ctx context.Context, identifier, password string) (validate.FieldErrors, error) {
	if f.state == LoginSubmitting {
		return nil, common.ErrAlreadySubmitting
	}

	if fe := validate.Login(identifier, password, f.strictEmail); !fe.Valid() {
		return fe, nil
	}

	f.state = LoginSubmitting

	res, err := f.api.Login(ctx, identifier, password)
	if err != nil {
		f.state = LoginFailed
		return nil, ErrInvalidCredentials
	}

	s := session.Session{Token: res.Token, UserID: res.UserID, Email: res.Email}
	if s.UserID == "" {
		// backend body omitted identity, fall back to what the user typed
		s.UserID = identifier
	}

	if err := f.sessions.Save(ctx, s); err != nil {
		f.state = LoginFailed
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	f.sctx.SetSession(s)

	f.state = LoginAuthenticated
	return nil, nil
}

// Logout clears both the persisted and the in-memory session.
func (f *Login) Logout(ctx context.Context) error {
	if err := f.sessions.Clear(ctx); err != nil {
		return err
	}
	f.sctx.ClearSession()
	f.state = LoginIdle
	return nil
}
