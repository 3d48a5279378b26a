// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package app is the Bubble Tea program behind `authapp tui`.

The model starts in a checking phase that shows a spinner while the startup
resolver asks the remote for the current user. It then shows one of four
screens (welcome, login, register, home) chosen by the gate package from
the shared state.Store.

Every network call runs as a tea.Cmd. While a flow is in flight its trigger
is disabled and relabelled. Results come back as messages; only Update
writes the state store once the program is past the checking phase.
State changes arrive on a channel fed by a store subscription, so the gate
is re-evaluated no matter which code path changed the user.

Usage:

	model := app.New(app.Options{
		Auth:   service,
		Client: client,
		Store:  store,
		Theme:  styles.NewTheme(cfg.UI.Theme),
	})
	defer model.Close()
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
*/
package app
