// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockremote

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/logging"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is where `authapp mock-server` listens by default.
	DefaultAddr = "127.0.0.1:8790"

	// MaxRequestBodySize is the maximum size for a request body.
	MaxRequestBodySize = 64 * 1024

	// SessionLength is how long a created session stays valid.
	SessionLength = 365 * 24 * time.Hour

	// uniqueIDPlaceholder asks the server to generate the user ID.
	uniqueIDPlaceholder = "unique()"
)

// Remote error messages, worded like the hosted service.
const (
	msgUserExists         = "A user with the same id, email, or phone already exists in this project."
	msgInvalidCredentials = "Invalid credentials. Please check the email and password."
	msgSessionExists      = "Creation of a session is prohibited when a session is active."
	msgSessionNotFound    = "The current user session could not be found."
	msgGuestScope         = "User (role: guests) missing scope (account)"
	msgInvalidBody        = "Invalid request body."
	msgInvalidUserID      = "Invalid `userId` param: Parameter must contain at most 36 chars. Valid chars are a-z, A-Z, 0-9, period, hyphen, and underscore. Can't start with a special char"
	msgInvalidEmail       = "Invalid `email` param: Value must be a valid email address"
	msgInvalidPassword    = "Invalid `password` param: Password must be between 8 and 256 characters long, and should not be one of the commonly used password."
	msgInvalidName        = "Invalid `name` param: Value must be a valid string and at most 128 chars"
)

// ============================================================================
// SERVER
// ============================================================================

type account struct {
	user         appwrite.User
	passwordHash []byte
}

type session struct {
	meta   appwrite.Session
	secret string
}

// Server is an in-memory account service for one project.
type Server struct {
	projectID  string
	router     *mux.Router
	handler    http.Handler
	validate   *validator.Validate
	log        zerolog.Logger
	bcryptCost int
	now        func() time.Time

	mu       sync.RWMutex
	accounts map[string]*account // by user ID
	emails   map[string]string   // lowercased email -> user ID
	sessions map[string]*session // by secret
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = logging.Component(l, "mockremote") }
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.bcryptCost = cost }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a Server for projectID.
func New(projectID string, opts ...Option) *Server {
	s := &Server{
		projectID:  projectID,
		router:     mux.NewRouter(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		log:        logging.Nop(),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		accounts:   make(map[string]*account),
		emails:     make(map[string]string),
		sessions:   make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	s.handler = Chain(
		RecoveryMiddleware(s.log),
		LoggingMiddleware(s.log),
		ProjectMiddleware(s.projectID),
	)(s.router)
	return s
}

// Handler returns the HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ProjectID returns the served project.
func (s *Server) ProjectID() string {
	return s.projectID
}

// CookieName is the session cookie name for the served project.
func (s *Server) CookieName() string {
	return appwrite.SessionCookiePrefix + s.projectID
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/account", s.handleCreateAccount).Methods(http.MethodPost)
	s.router.HandleFunc("/account", s.handleGetAccount).Methods(http.MethodGet)
	s.router.HandleFunc("/account/sessions/email", s.handleCreateSession).Methods(http.MethodPost)
	s.router.HandleFunc("/account/sessions/{sessionId}", s.handleDeleteSession).Methods(http.MethodDelete)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, appwrite.TypeGeneralRouteNotFound,
			"The requested route was not found. Please refer to the API docs and try again.")
	})
	s.router.MethodNotAllowedHandler = s.router.NotFoundHandler
}

// ============================================================================
// LIFECYCLE
// ============================================================================

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Str("project", s.projectID).Msg("mock remote listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("mock remote shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ============================================================================
// STATE
// ============================================================================

// Seed creates an account directly, bypassing HTTP. Used to provision the
// test credentials for local development.
func (s *Server) Seed(email, password, name string) (*appwrite.User, error) {
	user, rerr := s.createAccount(createAccountBody{
		UserID:   uniqueIDPlaceholder,
		Email:    email,
		Password: password,
		Name:     name,
	})
	if rerr != nil {
		return nil, rerr
	}
	return user, nil
}

// UserCount returns the number of registered accounts.
func (s *Server) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// FallbackCookie returns the X-Fallback-Cookies value carrying secret.
func (s *Server) FallbackCookie(secret string) string {
	doc, _ := json.Marshal(map[string]string{s.CookieName(): secret})
	return string(doc)
}

// sessionFromRequest returns the live session named by the request, if any.
func (s *Server) sessionFromRequest(r *http.Request) *session {
	secret := ""
	if raw := r.Header.Get(appwrite.HeaderFallbackCookies); raw != "" {
		var cookies map[string]string
		if err := json.Unmarshal([]byte(raw), &cookies); err == nil {
			secret = cookies[s.CookieName()]
		}
	}
	if secret == "" {
		if ck, err := r.Cookie(s.CookieName()); err == nil {
			secret = ck.Value
		}
	}
	if secret == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[secret]
	if !ok {
		return nil
	}
	if expire, err := time.Parse(time.RFC3339, sess.meta.Expire); err == nil && s.now().After(expire) {
		delete(s.sessions, secret)
		return nil
	}
	return sess
}

// ============================================================================
// HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, typ, message string) {
	writeJSON(w, status, appwrite.RemoteError{
		Message: message,
		Code:    status,
		Type:    typ,
	})
}

func writeRemoteError(w http.ResponseWriter, err *appwrite.RemoteError) {
	writeJSON(w, err.Code, err)
}

func newRemoteError(status int, typ, message string) *appwrite.RemoteError {
	return &appwrite.RemoteError{Message: message, Code: status, Type: typ}
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000+00:00")
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func normalizeEmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
