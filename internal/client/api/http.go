package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trufund/trufund/internal/common"
)

// TokenProvider supplies the current session token, or "" when logged out.
// Wiring the session context's Token method here keeps the api package
// unaware of how sessions are stored.
type TokenProvider func() string

// HTTPClient talks JSON over HTTP to the TruFund backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenProvider
}

// NewHTTPClient builds a client for the backend at baseURL. The timeout
// applies to each request as a whole; there are no retries and no token
// refresh.
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenProvider) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// do performs one JSON request against path (relative to the base URL).
// When authenticated is set, the session token is attached as the
// sessionToken cookie; an absent token aborts the call before any network
// I/O with ErrUnauthenticated.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, authenticated bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if authenticated {
		tok := c.token()
		if tok == "" {
			return nil, common.ErrUnauthenticated
		}
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: tok})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, failureFromBody(resp)
	}

	return resp, nil
}

// failureFromBody turns a non-2xx response into ErrRequestFailed, carrying
// the server message when the body parses as {"message": ...}.
func failureFromBody(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if json.Unmarshal(b, &payload) == nil && payload.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrRequestFailed, payload.Message)
		}
	}
	return fmt.Errorf("%w: status %s", common.ErrRequestFailed, resp.Status)
}

// sessionTokenFromResponse extracts the session token from the response
// Set-Cookie headers using the typed cookie parser. A 2xx response without
// the cookie is a malformed response, not a silent empty token.
func sessionTokenFromResponse(resp *http.Response) (string, error) {
	for _, c := range resp.Cookies() {
		if c.Name == common.SessionCookieName && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("%w: no %s cookie", common.ErrMalformedResponse, common.SessionCookieName)
}

func (c *HTTPClient) Register(ctx context.Context, form RegistrationForm) error {
	resp, err := c.do(ctx, http.MethodPost, "auth/register", form, false)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, email, otp string) error {
	body := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{Email: email, OTP: otp}

	resp, err := c.do(ctx, http.MethodPost, "auth/verify-email", body, false)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) FinalizeRegistration(ctx context.Context, userID string) (string, error) {
	body := struct {
		UserID string `json:"userid"`
	}{UserID: userID}

	resp, err := c.do(ctx, http.MethodPost, "auth/finalize-registration", body, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return sessionTokenFromResponse(resp)
}

func (c *HTTPClient) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	body := struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}{Identifier: identifier, Password: password}

	resp, err := c.do(ctx, http.MethodPost, "auth/login", body, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	token, err := sessionTokenFromResponse(resp)
	if err != nil {
		return nil, err
	}

	// Identity fields are best-effort: the token is the credential, the
	// body only refines who it belongs to.
	var payload struct {
		UserData struct {
			UserID string `json:"userid"`
			Email  string `json:"email"`
		} `json:"userData"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	return &LoginResult{
		Token:  token,
		UserID: payload.UserData.UserID,
		Email:  payload.UserData.Email,
	}, nil
}

func (c *HTTPClient) RequestLoan(ctx context.Context, req LoanRequest) error {
	resp, err := c.do(ctx, http.MethodPost, "api/makeRequest", req, true)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "api/ping", nil, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	return string(b), nil
}
