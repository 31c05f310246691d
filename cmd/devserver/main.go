package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trufund/trufund/internal/devserver"
	"github.com/trufund/trufund/internal/logging"
)

func main() {

	addr := flag.String("addr", ":3000", "address to listen on")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "session token validity")
	flag.Parse()

	secret := os.Getenv("TRUFUND_DEV_SECRET")
	if secret == "" {
		secret = "trufund-dev-secret"
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "starting dev server", "addr", *addr)
	srv := devserver.NewServer(logger, []byte(secret), *tokenTTL)
	if err := srv.Run(ctx, *addr); err != nil {
		log.Fatalf("%v", err)
	}

}
