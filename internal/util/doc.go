// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across authapp packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync, used for the
//     config file and the file-backed session store
//   - NormalizeField: trims and NFC-normalises form input
//   - MaskEmail: hides the local part of an email address in logs
package util
