// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/auth"
	"github.com/liongatetechnology/authapp/internal/gate"
	"github.com/liongatetechnology/authapp/internal/ui/components"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.theme.SetSize(msg.Width, msg.Height)
		w := m.theme.ContentWidth()
		for _, f := range m.fields() {
			f.SetWidth(w)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ResolvedMsg:
		m.phase = PhaseReady
		m.spinner.Stop()
		cmd := m.setScreen(gate.Welcome)
		return m, tea.Batch(cmd, m.applyGate())

	case StateChangedMsg:
		var cmd tea.Cmd
		if m.phase == PhaseReady {
			cmd = m.applyGate()
		}
		return m, tea.Batch(cmd, m.waitForChange())

	case LoginResultMsg:
		return m.handleSignedIn(msg.User, msg.Err, AlertLoginFailed)

	case RegisterResultMsg:
		return m.handleSignedIn(msg.User, msg.Err, AlertRegisterFailed)

	case LogoutResultMsg:
		m.busy = actNone
		if msg.Err != nil {
			// A failed logout leaves the user signed in.
			m.alert.Show(AlertLogoutFailed, auth.AlertMessage(msg.Err))
			return m, nil
		}
		m.store.Clear()
		return m, m.applyGate()
	}

	// Anything else (cursor blinks) goes to the focused field.
	if f := m.focusedField(); f != nil {
		return m, f.Update(msg)
	}
	return m, nil
}

// handleSignedIn finishes the login and register flows.
func (m Model) handleSignedIn(user *appwrite.User, err error, failTitle string) (tea.Model, tea.Cmd) {
	m.busy = actNone
	if err != nil {
		m.alert.Show(failTitle, auth.AlertMessage(err))
		return m, nil
	}
	m.store.Set(user)
	return m, m.applyGate()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// The alert blocks everything but dismissal.
	if m.alert.Visible() {
		if key.Matches(msg, m.keys.Submit) || key.Matches(msg, m.keys.Back) {
			m.alert.Dismiss()
			return m, m.setFocus(m.focus)
		}
		return m, nil
	}

	if m.phase == PhaseChecking {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Back):
		if m.screen == gate.Login || m.screen == gate.Register {
			return m, m.setScreen(gate.Welcome)
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	if f := m.focusedField(); f != nil {
		return m, f.Update(msg)
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	return m, nil
}

// submit handles enter on the focused element. Enter in the last field of
// a form submits it; in any other field it moves to the next element.
func (m Model) submit() (tea.Model, tea.Cmd) {
	items := m.focusItems()
	if m.focus >= len(items) {
		return m, nil
	}
	it := items[m.focus]
	if it.field != nil {
		switch it.field {
		case m.loginPassword:
			return m.activate(actLogin)
		case m.registerPassword:
			return m.activate(actRegister)
		}
		return m, m.setFocus(m.focus + 1)
	}
	if it.button.Disabled {
		return m, nil
	}
	return m.activate(it.act)
}

// activate performs an action.
func (m Model) activate(act action) (tea.Model, tea.Cmd) {
	switch act {
	case actGoLogin:
		return m, m.setScreen(gate.Login)
	case actGoRegister:
		return m, m.setScreen(gate.Register)
	}

	if m.busy != actNone {
		return m, nil
	}

	switch act {
	case actFillTest:
		m.loginEmail.SetValue(m.testEmail)
		m.loginPassword.SetValue(m.testPassword)
		return m, nil

	case actLogin:
		creds := auth.LoginCredentials(m.loginEmail.Value(), m.loginPassword.Value())
		if err := creds.Validate(); err != nil {
			m.alert.Show(auth.MissingInfoTitle, auth.AlertMessage(err))
			return m, nil
		}
		m.busy = actLogin
		return m, m.loginCmd(creds.Email, creds.Password)

	case actRegister:
		creds := auth.RegisterCredentials(m.registerName.Value(), m.registerEmail.Value(), m.registerPassword.Value())
		if err := creds.Validate(); err != nil {
			m.alert.Show(auth.MissingInfoTitle, auth.AlertMessage(err))
			return m, nil
		}
		m.busy = actRegister
		return m, m.registerCmd(creds.Name, creds.Email, creds.Password)

	case actLogout:
		m.busy = actLogout
		return m, m.logoutCmd()
	}
	return m, nil
}

// focusedField returns the focused text field, if any.
func (m Model) focusedField() *components.TextField {
	items := m.focusItems()
	if m.focus < len(items) {
		return items[m.focus].field
	}
	return nil
}

func (m Model) fields() []*components.TextField {
	return []*components.TextField{
		m.loginEmail, m.loginPassword,
		m.registerName, m.registerEmail, m.registerPassword,
	}
}
