// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the building blocks of the authapp screens:
// a labelled spinner, a blocking alert, labelled text fields, buttons and
// the header bar. Components render through a *styles.Theme and leave key
// routing to the owning model.
package components
