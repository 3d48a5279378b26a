// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package appwrite

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/sessionstore"
)

// Defaults for the hosted deployment authapp was built against.
const (
	// DefaultEndpoint is the base URL of the account API.
	DefaultEndpoint = "https://fra.cloud.appwrite.io/v1"

	// DefaultProjectID identifies the project on the remote service.
	DefaultProjectID = "68b83baf0025a8047e32"

	// DefaultPlatform is the platform ID registered with the project.
	DefaultPlatform = "com.liongatetechnology.authapp"

	// DefaultTimeout bounds a single round trip.
	DefaultTimeout = 30 * time.Second

	// ResponseFormat is the API response format version requested.
	ResponseFormat = "1.6.0"

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 1 * 1024 * 1024
)

// Header names used by the remote service.
const (
	HeaderProject         = "X-Appwrite-Project"
	HeaderResponseFormat  = "X-Appwrite-Response-Format"
	HeaderFallbackCookies = "X-Fallback-Cookies"
)

// SessionCookiePrefix starts the name of every session cookie.
const SessionCookiePrefix = "a_session_"

// userAgent is sent with every request.
var userAgent = fmt.Sprintf("authapp/1.0 (%s; %s)", runtime.GOOS, runtime.GOARCH)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// SECURITY: TLS verification required for production
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	// Per-request deadlines come from the context, see Client.timeout.
}

// Config configures a Client.
type Config struct {
	Endpoint  string
	ProjectID string
	Platform  string

	// Timeout bounds each round trip. Zero means DefaultTimeout.
	Timeout time.Duration

	// Store holds the session cookie. Nil means an in-memory store.
	Store sessionstore.Store

	// HTTPClient overrides the shared pooled client. Used by tests.
	HTTPClient *http.Client

	Logger *zerolog.Logger
}

// Client talks to the remote account API. It is safe for concurrent use;
// all mutable state lives in the session store.
type Client struct {
	endpoint   string
	projectID  string
	platform   string
	timeout    time.Duration
	store      sessionstore.Store
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" || strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return nil, fmt.Errorf("%w: invalid endpoint %q", ErrNotConfigured, cfg.Endpoint)
	}

	c := &Client{
		endpoint:   endpoint,
		projectID:  strings.TrimSpace(cfg.ProjectID),
		platform:   strings.TrimSpace(cfg.Platform),
		timeout:    cfg.Timeout,
		store:      cfg.Store,
		httpClient: cfg.HTTPClient,
		log:        logging.Nop(),
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.store == nil {
		c.store = sessionstore.NewMemory()
	}
	if c.httpClient == nil {
		c.httpClient = sharedHTTPClient
	}
	if cfg.Logger != nil {
		c.log = logging.Component(*cfg.Logger, "appwrite")
	}
	return c, nil
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string { return c.endpoint }

// ProjectID returns the configured project ID.
func (c *Client) ProjectID() string { return c.projectID }

// Platform returns the configured platform ID.
func (c *Client) Platform() string { return c.platform }

// HasSessionCookie reports whether a session cookie is stored locally. It
// says nothing about whether the remote service still honours it.
func (c *Client) HasSessionCookie(ctx context.Context) (bool, error) {
	cookie, err := c.store.Load(ctx)
	if err != nil {
		return false, err
	}
	return cookie != "", nil
}

// ============================================================================
// ACCOUNT OPERATIONS
// ============================================================================

// CreateAccount registers a new account. It does not sign the account in.
func (c *Client) CreateAccount(ctx context.Context, userID, email, password, name string) (*Account, error) {
	var account Account
	err := c.call(ctx, "create_account", http.MethodPost, "/account", createAccountRequest{
		UserID:   userID,
		Email:    email,
		Password: password,
		Name:     name,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateEmailPasswordSession signs in with email and password. On success
// the session cookie is kept in the store and sent with later calls.
func (c *Client) CreateEmailPasswordSession(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.call(ctx, "create_session", http.MethodPost, "/account/sessions/email", createSessionRequest{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCurrentUser returns the account that owns the current session.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.call(ctx, "get_account", http.MethodGet, "/account", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteSession ends a session. Pass CurrentSession to sign out. Deleting
// the current session also forgets the local cookie.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	path := "/account/sessions/" + url.PathEscape(sessionID)
	if err := c.call(ctx, "delete_session", http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	if sessionID == CurrentSession {
		if err := c.store.Clear(ctx); err != nil {
			return &RemoteError{
				Message: "failed to clear stored session: " + err.Error(),
				Type:    TypeClientSessionStore,
			}
		}
	}
	return nil
}

// ============================================================================
// TRANSPORT
// ============================================================================

// call performs one round trip and decodes the response into out.
// Every error it returns is a *RemoteError.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	log := c.log.With().Str(logging.FieldOperation, op).Logger()

	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return &RemoteError{Message: err.Error(), Type: TypeClientTransport}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Dur(logging.FieldDuration, time.Since(start)).Msg("request failed")
		typ := TypeClientTransport
		if errors.Is(err, context.DeadlineExceeded) {
			typ = TypeClientTimeout
		}
		return &RemoteError{Message: transportMessage(err), Type: typ}
	}
	defer resp.Body.Close()

	// SECURITY: Read response with size limit to prevent memory exhaustion
	body, err := readResponse(resp)
	if err != nil {
		return &RemoteError{Message: err.Error(), Code: resp.StatusCode, Type: TypeClientTransport}
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int(logging.FieldStatus, resp.StatusCode).
		Dur(logging.FieldDuration, time.Since(start)).
		Msg("remote call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleErrorResponse(resp.StatusCode, body)
	}

	if err := c.captureSession(ctx, resp); err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RemoteError{
			Message: fmt.Sprintf("failed to parse response: %v", err),
			Code:    resp.StatusCode,
			Type:    TypeClientTransport,
		}
	}
	return nil
}

// newRequest builds a request with the project, platform and session headers.
func (c *Client) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(HeaderProject, c.projectID)
	req.Header.Set(HeaderResponseFormat, ResponseFormat)
	if c.platform != "" {
		req.Header.Set("Origin", fmt.Sprintf("appwrite-%s://%s", runtime.GOOS, c.platform))
	}

	cookie, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored session: %w", err)
	}
	if cookie != "" {
		req.Header.Set(HeaderFallbackCookies, cookie)
	}
	return req, nil
}

// captureSession stores the session cookie carried by resp, if any.
func (c *Client) captureSession(ctx context.Context, resp *http.Response) error {
	cookie := resp.Header.Get(HeaderFallbackCookies)
	if cookie == "" {
		cookie = sessionCookieFromSetCookie(resp)
	}
	if cookie == "" {
		return nil
	}
	// SECURITY: the cookie value is a credential and is never logged
	if err := c.store.Save(ctx, cookie); err != nil {
		return &RemoteError{
			Message: "failed to store session: " + err.Error(),
			Type:    TypeClientSessionStore,
		}
	}
	c.log.Debug().Msg("session cookie stored")
	return nil
}

// sessionCookieFromSetCookie rebuilds the fallback cookie document from
// Set-Cookie headers, for servers that do not send X-Fallback-Cookies.
func sessionCookieFromSetCookie(resp *http.Response) string {
	found := map[string]string{}
	for _, ck := range resp.Cookies() {
		if strings.HasPrefix(ck.Name, SessionCookiePrefix) && !strings.HasSuffix(ck.Name, "_legacy") {
			found[ck.Name] = ck.Value
		}
	}
	if len(found) == 0 {
		return ""
	}
	doc, err := json.Marshal(found)
	if err != nil {
		return ""
	}
	return string(doc)
}

// readResponse reads the response body with size limits to prevent memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts a non-2xx response into a RemoteError.
func handleErrorResponse(statusCode int, body []byte) error {
	var remote RemoteError
	if err := json.Unmarshal(body, &remote); err == nil && remote.Message != "" {
		if remote.Code == 0 {
			remote.Code = statusCode
		}
		return &remote
	}

	// Fallback for unparseable error responses
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &RemoteError{Message: msg, Code: statusCode}
}

// transportMessage turns a transport failure into a short user-facing message.
func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Check your connection and try again."
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Sprintf("Network request failed: %v", urlErr.Err)
	}
	return fmt.Sprintf("Network request failed: %v", err)
}
