// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeField trims surrounding whitespace and applies Unicode NFC so that
// visually identical input submits identical bytes. Case is preserved.
func NormalizeField(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// MaskEmail hides the local part of an email address for log output,
// keeping the first character and the domain: "jane@example.com" -> "j***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		if email == "" {
			return ""
		}
		return "***"
	}
	local := []rune(email[:at])
	return string(local[0]) + "***" + email[at:]
}
