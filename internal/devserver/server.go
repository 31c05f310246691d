// Package devserver implements an in-memory stand-in for the TruFund
// backend, exposing the same wire contract the client talks to. It exists
// so the client can be developed and demoed without the real service;
// verification codes are logged instead of emailed and nothing survives a
// restart.
package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trufund/trufund/internal/common"
	"github.com/trufund/trufund/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpLength   = 6
	otpValidity = 10 * time.Minute
	bcryptCost  = 12
)

// Server carries the dependencies of the HTTP handlers.
type Server struct {
	store    *memStore
	log      logging.Logger
	secret   []byte
	tokenTTL time.Duration
}

func NewServer(log logging.Logger, secret []byte, tokenTTL time.Duration) *Server {
	return &Server{
		store:    newMemStore(),
		log:      log,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Router builds the gin engine with the public auth endpoints and the
// cookie-authenticated api group.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/verify-email", s.verifyEmail)
		auth.POST("/finalize-registration", s.finalizeRegistration)
		auth.POST("/login", s.login)
	}

	api := r.Group("/api")
	api.Use(s.sessionAuth())
	{
		api.POST("/makeRequest", s.makeRequest)
		api.GET("/ping", s.ping)
	}

	return r
}

// Run starts the server on addr and blocks until it fails or ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// fail writes the uniform error body the client parses for its messages.
func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// sessionAuth authenticates requests by the session cookie and stores the
// user ID in the request context.
func (s *Server) sessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookieName)
		if err != nil || token == "" {
			fail(c, http.StatusUnauthorized, "Not logged in")
			return
		}

		userID, err := userIDFromToken(token, s.secret)
		if err != nil {
			fail(c, http.StatusUnauthorized, "Session expired, please log in again")
			return
		}
		if _, err := s.store.byID(userID); err != nil {
			fail(c, http.StatusUnauthorized, "Unknown user")
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// setSessionCookie issues a fresh token for userID on the response.
func (s *Server) setSessionCookie(c *gin.Context, userID string) error {
	token, err := generateToken(userID, s.secret, s.tokenTTL)
	if err != nil {
		return err
	}
	c.SetCookie(common.SessionCookieName, token, int(s.tokenTTL.Seconds()), "/", "", false, true)
	return nil
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
}

func checkPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
