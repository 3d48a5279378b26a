// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/auth"
	"github.com/liongatetechnology/authapp/internal/gate"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/state"
	"github.com/liongatetechnology/authapp/internal/ui/components"
	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

// Authenticator is the subset of *auth.Service the screens drive.
type Authenticator interface {
	Register(ctx context.Context, email, password, name string) (*appwrite.User, error)
	Login(ctx context.Context, email, password string) (*appwrite.User, error)
	Logout(ctx context.Context) error
}

// Options configures a Model.
type Options struct {
	Auth   Authenticator
	Client auth.SessionClient
	Store  *state.Store
	Theme  *styles.Theme
	Logger *zerolog.Logger

	// Context bounds every flow. Defaults to context.Background.
	Context context.Context

	// Header details.
	Endpoint string
	Project  string

	// Test credentials action on the login screen.
	ShowTestCredentials bool
	TestEmail           string
	TestPassword        string
}

// Phase is the coarse lifecycle of the model.
type Phase int

const (
	// PhaseChecking shows only the spinner while the session is resolved.
	PhaseChecking Phase = iota
	PhaseReady
)

// action is something a focusable element does when selected.
type action int

const (
	actNone action = iota
	actGoLogin
	actGoRegister
	actFillTest
	actLogin
	actRegister
	actLogout
)

// focusItem is either a text field or a button.
type focusItem struct {
	field  *components.TextField
	button *components.Button
	act    action
}

// Action labels. The in-flight labels replace the trigger's label while a
// flow runs.
const (
	LabelSignIn         = "Sign in"
	LabelCreateAccount  = "Create an account"
	LabelCreate         = "Create account"
	LabelSignOut        = "Sign out"
	LabelUseTest        = "Use test credentials"
	LabelToRegister     = "Don't have an account? Create one"
	LabelToLogin        = "Already have an account? Sign in"
	LabelSigningIn      = "Signing in…"
	LabelCreating       = "Creating…"
	LabelSigningOut     = "Signing out…"
	LabelChecking       = "Checking session…"
	AlertLoginFailed    = "Login failed"
	AlertRegisterFailed = "Register failed"
	AlertLogoutFailed   = "Logout failed"
)

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	auth   Authenticator
	client auth.SessionClient
	store  *state.Store
	theme  *styles.Theme
	log    zerolog.Logger
	keys   KeyMap

	showTest     bool
	testEmail    string
	testPassword string

	phase  Phase
	screen gate.Screen
	busy   action
	focus  int

	header  components.Header
	spinner components.Spinner
	alert   components.Alert

	loginEmail       *components.TextField
	loginPassword    *components.TextField
	registerName     *components.TextField
	registerEmail    *components.TextField
	registerPassword *components.TextField

	// RELIABILITY: capacity 1 with a non-blocking send. A pending signal
	// already covers any later change because the handler reads Current().
	changes     chan struct{}
	unsubscribe func()
}

// New creates the model and subscribes it to the state store.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	store := opts.Store
	if store == nil {
		store = state.New()
	}
	logger := logging.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	m := Model{
		ctx:          ctx,
		auth:         opts.Auth,
		client:       opts.Client,
		store:        store,
		theme:        theme,
		log:          logging.Component(logger, "ui"),
		keys:         DefaultKeyMap(),
		showTest:     opts.ShowTestCredentials,
		testEmail:    opts.TestEmail,
		testPassword: opts.TestPassword,
		phase:        PhaseChecking,
		screen:       gate.Welcome,
		header:       components.NewHeader(theme, opts.Endpoint, opts.Project),
		spinner:      components.NewSpinner(theme),
		alert:        components.NewAlert(theme),
		changes:      make(chan struct{}, 1),

		loginEmail:       components.NewTextField(theme, "Email", "you@example.com", false),
		loginPassword:    components.NewTextField(theme, "Password", "password", true),
		registerName:     components.NewTextField(theme, "Name", "Your name", false),
		registerEmail:    components.NewTextField(theme, "Email", "you@example.com", false),
		registerPassword: components.NewTextField(theme, "Password", "at least 8 characters", true),
	}
	m.spinner.SetMessage(LabelChecking)
	m.spinner.Start()

	changes := m.changes
	m.unsubscribe = store.Subscribe(func(*appwrite.User) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	return m
}

// Close removes the state subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Screen returns the screen currently shown.
func (m Model) Screen() gate.Screen {
	return m.screen
}

// Phase returns the lifecycle phase.
func (m Model) Phase() Phase {
	return m.phase
}

// Busy reports whether a flow is in flight.
func (m Model) Busy() bool {
	return m.busy != actNone
}

// AlertVisible reports whether a blocking alert is shown.
func (m Model) AlertVisible() bool {
	return m.alert.Visible()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the spinner, the startup resolver and the state listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick(), m.resolveCmd(), m.waitForChange())
}

// =============================================================================
// COMMANDS
// =============================================================================

// resolveCmd runs the startup resolver. It is the one writer of the state
// store outside Update, and it runs before any screen can start a flow.
func (m Model) resolveCmd() tea.Cmd {
	ctx, client, store, log := m.ctx, m.client, m.store, m.log
	return func() tea.Msg {
		if client == nil {
			store.Set(nil)
			return ResolvedMsg{}
		}
		return ResolvedMsg{User: auth.Resolve(ctx, client, store, log)}
	}
}

// waitForChange blocks until the store reports a change.
func (m Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		<-changes
		return StateChangedMsg{}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	ctx, svc := m.ctx, m.auth
	return func() tea.Msg {
		user, err := svc.Login(ctx, email, password)
		return LoginResultMsg{User: user, Err: err}
	}
}

func (m Model) registerCmd(name, email, password string) tea.Cmd {
	ctx, svc := m.ctx, m.auth
	return func() tea.Msg {
		user, err := svc.Register(ctx, email, password, name)
		return RegisterResultMsg{User: user, Err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	ctx, svc := m.ctx, m.auth
	return func() tea.Msg {
		return LogoutResultMsg{Err: svc.Logout(ctx)}
	}
}

// =============================================================================
// FOCUS
// =============================================================================

// focusItems lists the focusable elements of the current screen in order.
func (m Model) focusItems() []focusItem {
	btn := func(label string, kind components.ButtonKind, act action) focusItem {
		b := &components.Button{Label: label, Kind: kind}
		if m.busy != actNone && (act == actLogin || act == actRegister || act == actLogout || act == actFillTest) {
			b.Disabled = true
		}
		return focusItem{button: b, act: act}
	}

	switch m.screen {
	case gate.Welcome:
		return []focusItem{
			btn(LabelSignIn, components.ButtonPrimary, actGoLogin),
			btn(LabelCreateAccount, components.ButtonLink, actGoRegister),
		}
	case gate.Login:
		items := []focusItem{{field: m.loginEmail}, {field: m.loginPassword}}
		if m.showTest {
			items = append(items, btn(LabelUseTest, components.ButtonAccent, actFillTest))
		}
		signIn := btn(LabelSignIn, components.ButtonPrimary, actLogin)
		if m.busy == actLogin {
			signIn.button.Label = LabelSigningIn
		}
		return append(items, signIn, btn(LabelToRegister, components.ButtonLink, actGoRegister))
	case gate.Register:
		create := btn(LabelCreate, components.ButtonPrimary, actRegister)
		if m.busy == actRegister {
			create.button.Label = LabelCreating
		}
		return []focusItem{
			{field: m.registerName},
			{field: m.registerEmail},
			{field: m.registerPassword},
			create,
			btn(LabelToLogin, components.ButtonLink, actGoLogin),
		}
	case gate.Home:
		out := btn(LabelSignOut, components.ButtonDanger, actLogout)
		if m.busy == actLogout {
			out.button.Label = LabelSigningOut
		}
		return []focusItem{out}
	}
	return nil
}

// setFocus moves focus to index i, wrapping, and focuses the field there.
func (m *Model) setFocus(i int) tea.Cmd {
	items := m.focusItems()
	if len(items) == 0 {
		m.focus = 0
		return nil
	}
	i = ((i % len(items)) + len(items)) % len(items)
	m.focus = i

	var cmd tea.Cmd
	for idx, it := range items {
		if it.field == nil {
			continue
		}
		if idx == i {
			cmd = it.field.Focus()
		} else {
			it.field.Blur()
		}
	}
	return cmd
}

// setScreen switches screens and focuses the first element.
func (m *Model) setScreen(s gate.Screen) tea.Cmd {
	if s != m.screen {
		m.log.Debug().Str("from", m.screen.String()).Str("to", s.String()).Msg("screen change")
	}
	m.screen = s
	return m.setFocus(0)
}

// applyGate redirects according to the current state.
func (m *Model) applyGate() tea.Cmd {
	target, redirected := gate.Resolve(m.screen, m.store.Current())
	if !redirected {
		return nil
	}
	if target == gate.Home {
		m.clearForms()
	}
	return m.setScreen(target)
}

// clearForms empties every form field.
func (m *Model) clearForms() {
	for _, f := range m.fields() {
		f.Reset()
	}
}
