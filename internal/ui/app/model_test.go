// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/auth"
	"github.com/liongatetechnology/authapp/internal/gate"
	"github.com/liongatetechnology/authapp/internal/mockremote"
	"github.com/liongatetechnology/authapp/internal/sessionstore"
	"github.com/liongatetechnology/authapp/internal/state"
	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

// =============================================================================
// FAKES AND HELPERS
// =============================================================================

type fakeAuth struct {
	mu sync.Mutex

	current *appwrite.User
	user    *appwrite.User
	err     error
	outErr  error

	logins    int
	registers int
	logouts   int
	lastEmail string
	lastName  string
	lastPass  string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*appwrite.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	f.lastEmail, f.lastPass = email, password
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Register(_ context.Context, email, password, name string) (*appwrite.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers++
	f.lastEmail, f.lastPass, f.lastName = email, password, name
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.outErr
}

func (f *fakeAuth) CreateAccount(context.Context, string, string, string, string) (*appwrite.Account, error) {
	return nil, &appwrite.RemoteError{Message: "not used"}
}

func (f *fakeAuth) CreateEmailPasswordSession(context.Context, string, string) (*appwrite.Session, error) {
	return nil, &appwrite.RemoteError{Message: "not used"}
}

func (f *fakeAuth) GetCurrentUser(context.Context) (*appwrite.User, error) {
	if f.current == nil {
		return nil, &appwrite.RemoteError{Code: 401, Type: appwrite.TypeGeneralUnauthorized, Message: "unauthorized"}
	}
	return f.current, nil
}

func (f *fakeAuth) DeleteSession(context.Context, string) error { return nil }

var jim = &appwrite.User{ID: "u1", Name: "Jim", Email: "jimmuell@aol.com"}

func newModel(t *testing.T, fake *fakeAuth, store *state.Store) Model {
	t.Helper()
	nop := zerolog.Nop()
	m := New(Options{
		Auth:                fake,
		Client:              fake,
		Store:               store,
		Theme:               styles.NewTheme(styles.ModeDark),
		Logger:              &nop,
		Endpoint:            "https://example.test/v1",
		Project:             "proj",
		ShowTestCredentials: true,
		TestEmail:           "jimmuell@aol.com",
		TestPassword:        "12345678",
	})
	t.Cleanup(m.Close)
	return m
}

// resolved returns a model past the checking phase.
func resolved(t *testing.T, fake *fakeAuth, store *state.Store) Model {
	t.Helper()
	m := newModel(t, fake, store)
	m, _ = step(m, m.resolveCmd()())
	require.Equal(t, PhaseReady, m.Phase())
	return m
}

func step(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, t tea.KeyType) (Model, tea.Cmd) {
	return step(m, tea.KeyMsg{Type: t})
}

func typeText(m Model, s string) Model {
	m, _ = step(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// focusOn moves focus to index i of the current screen.
func focusOn(m Model, i int) Model {
	m.setFocus(i)
	return m
}

const (
	loginEmailIdx  = 0
	loginPassIdx   = 1
	loginTestIdx   = 2
	loginSubmitIdx = 3
	loginLinkIdx   = 4
)

// =============================================================================
// STARTUP
// =============================================================================

func TestStartup_ShowsSpinnerUntilResolved(t *testing.T) {
	m := newModel(t, &fakeAuth{}, state.New())

	assert.Equal(t, PhaseChecking, m.Phase())
	assert.Contains(t, m.View(), LabelChecking)
	assert.NotNil(t, m.Init())

	// Keys do nothing while checking.
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, gate.Welcome, m.Screen())
	assert.Equal(t, PhaseChecking, m.Phase())
}

func TestStartup_NoSessionLandsOnWelcome(t *testing.T) {
	store := state.New()
	m := resolved(t, &fakeAuth{}, store)

	assert.Equal(t, gate.Welcome, m.Screen())
	assert.Nil(t, store.Current())
	assert.False(t, m.AlertVisible(), "resolver errors are never surfaced")
	assert.Contains(t, m.View(), "Welcome")
}

func TestStartup_ExistingSessionLandsOnHome(t *testing.T) {
	store := state.New()
	m := resolved(t, &fakeAuth{current: jim}, store)

	assert.Equal(t, gate.Home, m.Screen())
	assert.Equal(t, jim, store.Current())
	assert.Contains(t, m.View(), "Hello, Jim!")
	assert.Contains(t, m.View(), "jimmuell@aol.com")
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestWelcome_Navigation(t *testing.T) {
	m := resolved(t, &fakeAuth{}, state.New())

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, gate.Login, m.Screen())

	m, _ = press(m, tea.KeyEsc)
	assert.Equal(t, gate.Welcome, m.Screen())

	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, gate.Register, m.Screen())

	// Link from register back to login is the last element.
	m = focusOn(m, -1)
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, gate.Login, m.Screen())

	m = focusOn(m, loginLinkIdx)
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, gate.Register, m.Screen())
}

func TestFocus_WrapsAndRoutesTyping(t *testing.T) {
	m := resolved(t, &fakeAuth{}, state.New())
	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, gate.Login, m.Screen())

	m = typeText(m, "jim@")
	assert.Equal(t, "jim@", m.loginEmail.Value())

	m, _ = press(m, tea.KeyShiftTab)
	assert.Equal(t, loginLinkIdx, m.focus)
	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, loginEmailIdx, m.focus)

	// Enter in the email field moves on instead of submitting.
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, loginPassIdx, m.focus)
	assert.False(t, m.AlertVisible())

	// "q" is text inside a field.
	m = typeText(m, "q")
	assert.Equal(t, "q", m.loginPassword.Value())
}

func TestQuitKeys(t *testing.T) {
	m := resolved(t, &fakeAuth{}, state.New())

	_, cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = step(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLogin_MissingInfoNeverCallsRemote(t *testing.T) {
	fake := &fakeAuth{user: jim}
	m := resolved(t, fake, state.New())
	m, _ = press(m, tea.KeyEnter)

	m.loginEmail.SetValue("   ")
	m.loginPassword.SetValue("12345678")
	m = focusOn(m, loginSubmitIdx)
	m, cmd := press(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Zero(t, fake.logins)
	assert.True(t, m.AlertVisible())
	view := m.View()
	assert.Contains(t, view, auth.MissingInfoTitle)
	assert.Contains(t, view, "Please enter email and password.")

	// Alert blocks other keys until dismissed.
	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, loginSubmitIdx, m.focus)
	m, _ = press(m, tea.KeyEnter)
	assert.False(t, m.AlertVisible())
	assert.Zero(t, fake.logins)
}

func TestLogin_SuccessRedirectsHome(t *testing.T) {
	fake := &fakeAuth{user: jim}
	store := state.New()
	m := resolved(t, fake, store)
	m, _ = press(m, tea.KeyEnter)

	m.loginEmail.SetValue("  jimmuell@aol.com ")
	m.loginPassword.SetValue(" 12345678 ")
	m = focusOn(m, loginPassIdx)
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	assert.True(t, m.Busy())
	assert.Contains(t, m.View(), LabelSigningIn)

	// Triggers are disabled while in flight.
	m = focusOn(m, loginSubmitIdx)
	m, again := press(m, tea.KeyEnter)
	assert.Nil(t, again)

	m, _ = step(m, cmd())
	assert.Equal(t, 1, fake.logins)
	assert.Equal(t, "jimmuell@aol.com", fake.lastEmail)
	assert.Equal(t, " 12345678 ", fake.lastPass, "password is sent as typed")
	assert.False(t, m.Busy())
	assert.Equal(t, jim, store.Current())
	assert.Equal(t, gate.Home, m.Screen())
	assert.Contains(t, m.View(), "Hello, Jim!")
	assert.Empty(t, m.loginPassword.Value(), "forms are cleared on sign-in")
}

func TestLogin_FailureShowsRemoteMessage(t *testing.T) {
	fake := &fakeAuth{err: &appwrite.RemoteError{
		Code:    401,
		Type:    appwrite.TypeUserInvalidCredentials,
		Message: "Invalid credentials. Please check the email and password.",
	}}
	store := state.New()
	m := resolved(t, fake, store)
	m, _ = press(m, tea.KeyEnter)

	m.loginEmail.SetValue("nobody@example.com")
	m.loginPassword.SetValue("12345678")
	m = focusOn(m, loginSubmitIdx)
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m, _ = step(m, cmd())

	assert.Nil(t, store.Current())
	assert.Equal(t, gate.Login, m.Screen())
	assert.False(t, m.Busy())
	require.True(t, m.AlertVisible())
	view := m.View()
	assert.Contains(t, view, AlertLoginFailed)
	assert.Contains(t, view, "Invalid credentials. Please check the email and password.")
}

func TestLogin_UseTestCredentials(t *testing.T) {
	m := resolved(t, &fakeAuth{}, state.New())
	m, _ = press(m, tea.KeyEnter)

	m = focusOn(m, loginTestIdx)
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, "jimmuell@aol.com", m.loginEmail.Value())
	assert.Equal(t, "12345678", m.loginPassword.Value())
}

func TestLogin_TestCredentialsHiddenWhenDisabled(t *testing.T) {
	fake := &fakeAuth{}
	m := New(Options{Auth: fake, Client: fake, Theme: styles.NewTheme(styles.ModeDark)})
	t.Cleanup(m.Close)
	m, _ = step(m, m.resolveCmd()())
	m, _ = press(m, tea.KeyEnter)

	assert.NotContains(t, m.View(), LabelUseTest)
	assert.Len(t, m.focusItems(), 4)
}

// =============================================================================
// REGISTER
// =============================================================================

func TestRegister_MissingName(t *testing.T) {
	fake := &fakeAuth{user: jim}
	m := resolved(t, fake, state.New())
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, gate.Register, m.Screen())

	m.registerEmail.SetValue("a@b.c")
	m.registerPassword.SetValue("12345678")
	m = focusOn(m, 2)
	m, cmd := press(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Zero(t, fake.registers)
	assert.Contains(t, m.View(), "Please enter name, email, and password.")
}

func TestRegister_SuccessAndFailure(t *testing.T) {
	fake := &fakeAuth{user: jim}
	store := state.New()
	m := resolved(t, fake, store)
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyEnter)

	m.registerName.SetValue(" Jim ")
	m.registerEmail.SetValue("jimmuell@aol.com")
	m.registerPassword.SetValue("12345678")
	m = focusOn(m, 3)
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), LabelCreating)

	m, _ = step(m, cmd())
	assert.Equal(t, "Jim", fake.lastName)
	assert.Equal(t, gate.Home, m.Screen())
	assert.Equal(t, jim, store.Current())

	// Failure path on a fresh model.
	fail := &fakeAuth{err: &appwrite.RemoteError{
		Code:    409,
		Type:    appwrite.TypeUserAlreadyExists,
		Message: "A user with the same id, email, or phone already exists in this project.",
	}}
	m = resolved(t, fail, state.New())
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyEnter)
	m.registerName.SetValue("Jim")
	m.registerEmail.SetValue("jimmuell@aol.com")
	m.registerPassword.SetValue("12345678")
	m = focusOn(m, 3)
	m, cmd = press(m, tea.KeyEnter)
	m, _ = step(m, cmd())

	assert.Equal(t, gate.Register, m.Screen())
	assert.Contains(t, m.View(), AlertRegisterFailed)
	assert.Contains(t, m.View(), "already exists")
}

// =============================================================================
// HOME AND LOGOUT
// =============================================================================

func TestLogout_SuccessRedirectsWelcome(t *testing.T) {
	fake := &fakeAuth{current: jim}
	store := state.New()
	m := resolved(t, fake, store)
	require.Equal(t, gate.Home, m.Screen())

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), LabelSigningOut)

	m, _ = step(m, cmd())
	assert.Equal(t, 1, fake.logouts)
	assert.Nil(t, store.Current())
	assert.Equal(t, gate.Welcome, m.Screen())
}

func TestLogout_FailureKeepsUser(t *testing.T) {
	fake := &fakeAuth{current: jim, outErr: &appwrite.RemoteError{
		Code:    0,
		Type:    appwrite.TypeClientTransport,
		Message: "Network request failed: connection refused",
	}}
	store := state.New()
	m := resolved(t, fake, store)

	m, cmd := press(m, tea.KeyEnter)
	m, _ = step(m, cmd())

	assert.Equal(t, jim, store.Current())
	assert.Equal(t, gate.Home, m.Screen())
	assert.Contains(t, m.View(), AlertLogoutFailed)
	assert.Contains(t, m.View(), "Network request failed")
}

func TestStateChange_FromOutsideUpdate(t *testing.T) {
	store := state.New()
	m := resolved(t, &fakeAuth{current: jim}, store)
	require.Equal(t, gate.Home, m.Screen())

	// Drain the signal left by the resolver.
	select {
	case <-m.changes:
	default:
	}

	store.Clear()
	select {
	case <-m.changes:
	default:
		t.Fatal("store change did not signal the model")
	}

	m, cmd := step(m, StateChangedMsg{})
	assert.NotNil(t, cmd, "listener is re-armed")
	assert.Equal(t, gate.Welcome, m.Screen())
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		user *appwrite.User
		want string
	}{
		{nil, "Hello!"},
		{&appwrite.User{Name: ""}, "Hello!"},
		{&appwrite.User{Name: "   "}, "Hello!"},
		{&appwrite.User{Name: "Jim"}, "Hello, Jim!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Greeting(tt.user))
	}
}

// =============================================================================
// END TO END AGAINST THE MOCK REMOTE
// =============================================================================

func TestFlowsAgainstMockRemote(t *testing.T) {
	remote := mockremote.New("proj", mockremote.WithBcryptCost(bcrypt.MinCost))
	server := httptest.NewServer(remote.Handler())
	defer server.Close()

	client, err := appwrite.NewClient(appwrite.Config{
		Endpoint:  server.URL,
		ProjectID: "proj",
		Store:     sessionstore.NewMemory(),
	})
	require.NoError(t, err)
	svc := auth.NewService(client)
	store := state.New()

	m := New(Options{Auth: svc, Client: client, Store: store, Theme: styles.NewTheme(styles.ModeDark)})
	t.Cleanup(m.Close)
	m, _ = step(m, m.resolveCmd()())
	require.Equal(t, gate.Welcome, m.Screen())

	// Register.
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyEnter)
	m.registerName.SetValue("Jane")
	m.registerEmail.SetValue("Jane@Example.com")
	m.registerPassword.SetValue("12345678")
	m = focusOn(m, 2)
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m, _ = step(m, cmd())
	require.False(t, m.AlertVisible(), m.View())
	require.Equal(t, gate.Home, m.Screen())
	assert.Equal(t, "Jane@Example.com", store.Current().Email)
	assert.Contains(t, m.View(), "Hello, Jane!")

	// Logout.
	m, cmd = press(m, tea.KeyEnter)
	m, _ = step(m, cmd())
	require.Equal(t, gate.Welcome, m.Screen())
	assert.Zero(t, remote.SessionCount())

	// Login with a wrong password, then the right one.
	m, _ = press(m, tea.KeyEnter)
	m.loginEmail.SetValue("jane@example.com")
	m.loginPassword.SetValue("wrong-password")
	m = focusOn(m, loginPassIdx)
	m, cmd = press(m, tea.KeyEnter)
	m, _ = step(m, cmd())
	require.True(t, m.AlertVisible())
	assert.Nil(t, store.Current())

	m, _ = press(m, tea.KeyEnter)
	m.loginPassword.SetValue("12345678")
	m = focusOn(m, loginPassIdx)
	m, cmd = press(m, tea.KeyEnter)
	m, _ = step(m, cmd())
	assert.Equal(t, gate.Home, m.Screen())
	assert.Equal(t, 1, remote.SessionCount())
}
