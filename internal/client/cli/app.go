package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/trufund/trufund/internal/client/api"
	"github.com/trufund/trufund/internal/client/config"
	"github.com/trufund/trufund/internal/client/flow"
	"github.com/trufund/trufund/internal/client/session"
	"github.com/trufund/trufund/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModeUnknown Mode = "unknown"
)

// App wires the TruFund client together: configuration, the local session
// database, the API client and the interaction flows, plus the reader and
// writer the command loop talks to the user through.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	apiCli   api.Client
	sessions *session.Manager
	sctx     *session.Context
	login    *flow.Login
	loans    *flow.Loan
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	db, err := session.OpenDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	sessions := session.NewManager(db)
	sctx := session.NewContext()

	// Persisted state is the source of truth; rehydrate the in-memory
	// context before any command can read it. An inconsistent session is
	// cleared inside Load and we start logged out.
	s, err := sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s != nil {
		sctx.SetSession(*s)
		log.Info(ctx, "session restored", "userid", s.UserID)
	}

	apiCli := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, sctx.Token)

	return &App{
		config:   c,
		log:      log,
		db:       db,
		apiCli:   apiCli,
		sessions: sessions,
		sctx:     sctx,
		login:    flow.NewLogin(apiCli, sessions, sctx, c.StrictLoginEmail),
		loans:    flow.NewLoan(apiCli),
		Mode:     ModeUnknown,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.sctx.Session() != nil
}

// StartOnlineStatusWatcher periodically probes the backend and flips Mode
// between online and offline. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// only meaningful while a session token exists; Ping is an
			// authenticated call
			if !a.isLoggedIn() {
				continue
			}
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			_, err := a.apiCli.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
