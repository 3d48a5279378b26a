// authapp - sign in to an Appwrite project from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/liongatetechnology/authapp/internal/cli"
	"github.com/liongatetechnology/authapp/internal/config"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/ui/app"
	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()
	if err := run(cmd, args); err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}

func run(cmd cli.Command, args cli.Args) error {
	// Commands that need no config.
	switch cmd {
	case cli.CmdVersion:
		return cli.HandleVersion(args, os.Stdout)
	case cli.CmdHelp:
		return cli.HandleHelp(args, os.Stdout)
	}

	if cmd != cli.CmdTUI {
		cli.ConfigureColors()
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, cmd, args)
	if err != nil {
		return err
	}
	defer closer.Close()

	// RELIABILITY: Ctrl+C and SIGTERM cancel in-flight calls and stop the
	// mock server gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdMockServer:
		return cli.RunMockServer(ctx, cfg, logger, args, os.Stdout)
	case cli.CmdConfig:
		return cli.RunConfig(cfg, args, config.ExpandHome(args.ConfigPath), os.Stdout)
	}

	env, err := cli.NewEnv(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	switch cmd {
	case cli.CmdLogin:
		env.EnablePrompts()
		return cli.RunLogin(ctx, env, args)
	case cli.CmdRegister:
		env.EnablePrompts()
		return cli.RunRegister(ctx, env, args)
	case cli.CmdLogout:
		return cli.RunLogout(ctx, env, args)
	case cli.CmdWhoami:
		return cli.RunWhoami(ctx, env, args)
	case cli.CmdStatus:
		return cli.RunStatus(ctx, env, args)
	default:
		return runTUI(ctx, env, &logger)
	}
}

// loadConfig reads --config or the default files, then applies --endpoint.
func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(config.ExpandHome(args.ConfigPath))
	} else {
		cfg, err = config.Load()
		if cfg != nil && err != nil {
			// A broken config file falls back to defaults.
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			err = nil
		}
	}
	if err != nil {
		return nil, err
	}

	if args.Endpoint != "" {
		cfg.Remote.Endpoint = args.Endpoint
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose sends debug output to
// stderr for one-shot commands; the TUI never logs to the terminal.
func newLogger(cfg *config.Config, cmd cli.Command, args cli.Args) (zerolog.Logger, io.Closer, error) {
	lc := cfg.LoggingConfig()
	if args.Verbose && cmd != cli.CmdTUI {
		lc.Level = "debug"
		lc.Format = "console"
		lc.Output = logging.OutputStderr
	}
	if cmd == cli.CmdTUI {
		switch strings.ToLower(lc.Output) {
		case logging.OutputStdout, logging.OutputStderr:
			lc.Output = logging.OutputDiscard
		}
	}

	logger, closer, err := logging.New(lc)
	if err != nil {
		// Logging is best effort; a bad log path must not block sign-in.
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		return logging.Nop(), io.NopCloser(nil), nil
	}
	return logger, closer, nil
}

// runTUI starts the TUI interface.
func runTUI(ctx context.Context, env *cli.Env, logger *zerolog.Logger) error {
	cfg := env.Config
	theme := styles.NewTheme(cfg.UI.Theme)

	m := app.New(app.Options{
		Auth:                env.Auth,
		Client:              env.Client,
		Store:               env.State,
		Theme:               theme,
		Logger:              logger,
		Context:             ctx,
		Endpoint:            env.Client.Endpoint(),
		Project:             env.Client.ProjectID(),
		ShowTestCredentials: cfg.UI.ShowTestCredentials,
		TestEmail:           cfg.UI.TestEmail,
		TestPassword:        cfg.UI.TestPassword,
	})
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running authapp: %w", err)
	}
	return nil
}
