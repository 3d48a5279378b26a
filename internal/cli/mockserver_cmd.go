// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog"

	"github.com/liongatetechnology/authapp/internal/config"
	"github.com/liongatetechnology/authapp/internal/mockremote"
)

// TestAccountName is the display name of the seeded test account.
const TestAccountName = "Test User"

// MockServerOutput is printed once the mock server is listening.
type MockServerOutput struct {
	Endpoint string `json:"endpoint"`
	Project  string `json:"project"`
	Seeded   string `json:"seeded_email,omitempty"`
}

// RunMockServer serves an in-memory account service until ctx is cancelled.
// The configured test credentials are seeded unless --no-seed is given.
func RunMockServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args Args, out io.Writer) error {
	addr := args.Addr
	if addr == "" {
		addr = mockremote.DefaultAddr
	}

	srv := mockremote.New(cfg.Remote.ProjectID, mockremote.WithLogger(logger))

	var seeded string
	if !args.NoSeed && cfg.UI.TestEmail != "" && cfg.UI.TestPassword != "" {
		if _, err := srv.Seed(cfg.UI.TestEmail, cfg.UI.TestPassword, TestAccountName); err != nil {
			return fmt.Errorf("seed test account: %w", err)
		}
		seeded = cfg.UI.TestEmail
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	info := MockServerOutput{
		Endpoint: "http://" + ln.Addr().String(),
		Project:  srv.ProjectID(),
		Seeded:   seeded,
	}
	if args.JSON {
		if err := NewJSONResponse("mock-server", info).Write(out); err != nil {
			_ = ln.Close()
			return err
		}
	} else {
		fmt.Fprintln(out, TitleStyle.Render("Mock account service"))
		fmt.Fprintln(out, RenderField("Endpoint:", info.Endpoint))
		fmt.Fprintln(out, RenderField("Project:", info.Project))
		if seeded != "" {
			fmt.Fprintln(out, RenderField("Test user:", seeded))
		}
		fmt.Fprintln(out, DimStyle.Render(fmt.Sprintf("Use --endpoint %s or AUTHAPP_ENDPOINT. Ctrl+C to stop.", info.Endpoint)))
	}

	return srv.Serve(ctx, ln)
}
