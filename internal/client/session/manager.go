package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/trufund/trufund/internal/common"
	"github.com/trufund/trufund/internal/dbx"
)

// Manager layers the all-or-nothing session contract over the raw key-value
// store: the token and user-data keys are written together in one
// transaction, and a reader that finds one without the other treats the
// whole session as invalid.
type Manager struct {
	db *sql.DB
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) store() Store {
	return NewSQLiteStore(m.db)
}

// Save persists s as the active session. All three keys are written in a
// single transaction so a crash can never leave a token without its
// matching user data.
func (m *Manager) Save(ctx context.Context, s Session) error {
	if s.Token == "" || s.UserID == "" {
		return fmt.Errorf("refusing to persist: %w", common.ErrSessionIncomplete)
	}

	ud, err := json.Marshal(userData{UserID: s.UserID, Email: s.Email})
	if err != nil {
		return fmt.Errorf("failed to encode user data: %w", err)
	}

	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteStore(tx)
		if err := repo.Set(ctx, KeySessionToken, []byte(s.Token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUserData, ud); err != nil {
			return err
		}
		return repo.Set(ctx, KeyIsLogin, []byte("true"))
	})
}

// Load restores the persisted session, if any. When the login flag claims
// "true" but the token or user data is missing or unparsable, all session
// keys are cleared and (nil, nil) is returned: the caller lands on the
// unauthenticated entry point.
func (m *Manager) Load(ctx context.Context) (*Session, error) {
	repo := m.store()

	isLogin, err := repo.Get(ctx, KeyIsLogin)
	if err != nil {
		return nil, err
	}
	if string(isLogin) != "true" {
		return nil, nil
	}

	token, err := repo.Get(ctx, KeySessionToken)
	if err != nil {
		return nil, err
	}
	rawUserData, err := repo.Get(ctx, KeyUserData)
	if err != nil {
		return nil, err
	}

	var ud userData
	if len(token) == 0 || len(rawUserData) == 0 || json.Unmarshal(rawUserData, &ud) != nil || ud.UserID == "" {
		if err := repo.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &Session{Token: string(token), UserID: ud.UserID, Email: ud.Email}, nil
}

// Clear wipes all persisted session state (logout).
func (m *Manager) Clear(ctx context.Context) error {
	return m.store().Clear(ctx)
}
