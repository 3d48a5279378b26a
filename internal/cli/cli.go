// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for authapp.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdWhoami
	CmdStatus
	CmdMockServer
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON       bool   // Output in JSON format
	Verbose    bool   // Debug logging to stderr
	ConfigPath string // --config: explicit config file
	Endpoint   string // --endpoint: overrides remote.endpoint

	// Command-specific
	Subcommand string
	Name       string
	Email      string
	Password   string
	Addr       string
	NoSeed     bool
	ConfigKey  string
	ConfigVal  string

	// Unknown is set when the command word was not recognised.
	Unknown string

	// Raw args (remaining after the command word)
	Raw []string
}

const usageText = `authapp - sign in to an Appwrite project from the terminal

Usage:
  authapp                          Start the TUI (default)
  authapp tui                      Start the TUI
  authapp login [flags]            Sign in with email and password
  authapp register [flags]         Create an account and sign in
  authapp logout                   Sign out of the current session
  authapp whoami                   Show the signed-in user
  authapp status                   Show remote, store and session state
  authapp mock-server [flags]      Run an in-memory account service locally
  authapp config [show|get|set|path|keys]
  authapp version                  Show version information
  authapp help                     Show this help

Login / register flags:
  --name, -n NAME                  Display name (register only)
  --email, -e EMAIL                Account email
  --password, -p PASSWORD          Password (prompted when omitted)

Mock server flags:
  --addr ADDR                      Listen address (default 127.0.0.1:8790)
  --no-seed                        Do not create the test account

Config commands:
  authapp config show              Print the effective config (secrets redacted)
  authapp config get KEY           Print one value, e.g. remote.endpoint
  authapp config set KEY VALUE     Change one value and save
  authapp config path              Print the config file path
  authapp config keys              List every key

Global flags:
  --json                           Machine-readable output
  --config PATH                    Use this config file
  --endpoint URL                   Override remote.endpoint
  -v, --verbose                    Log at debug level to stderr

Environment:
  AUTHAPP_ENDPOINT, AUTHAPP_PROJECT, AUTHAPP_PLATFORM, AUTHAPP_SESSION_STORE,
  AUTHAPP_SESSION_PATH, AUTHAPP_REDIS_ADDR, AUTHAPP_LOG_LEVEL
  Values may also come from ./.env or ~/.authapp/.env.
`

// Usage returns the usage text.
func Usage() string {
	return usageText
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login", "signin", "sign-in":
		parseCredentialArgs(&parsedArgs, remaining)
		return CmdLogin, parsedArgs

	case "register", "signup", "sign-up":
		parseCredentialArgs(&parsedArgs, remaining)
		return CmdRegister, parsedArgs

	case "logout", "signout", "sign-out":
		return CmdLogout, parsedArgs

	case "whoami", "me":
		return CmdWhoami, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "mock-server", "mock":
		parseMockServerArgs(&parsedArgs, remaining)
		return CmdMockServer, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = cmd
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "--json":
			parsedArgs.JSON = true
		case arg == "-v" || arg == "--verbose":
			parsedArgs.Verbose = true
		case arg == "--config" && i+1 < len(args):
			i++
			parsedArgs.ConfigPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--endpoint" && i+1 < len(args):
			i++
			parsedArgs.Endpoint = args[i]
		case strings.HasPrefix(arg, "--endpoint="):
			parsedArgs.Endpoint = strings.TrimPrefix(arg, "--endpoint=")
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, parsedArgs
}

// parseCredentialArgs parses login and register flags.
func parseCredentialArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Name = p.Flag("name", "n")
	args.Email = p.Flag("email", "e")
	args.Password = p.Flag("password", "p")
}

func parseMockServerArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Addr = p.Flag("addr", "a")
	args.NoSeed = p.BoolFlag("no-seed")
}

func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	args.ConfigKey = p.Positional(1)
	args.ConfigVal = strings.Join(p.PositionalFrom(2), " ")
}

// =============================================================================
// VERSION AND HELP
// =============================================================================

// VersionInfo is the payload of `authapp version --json`.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// CurrentVersion returns the build's version information.
func CurrentVersion() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// HandleVersion prints version information.
func HandleVersion(args Args, out io.Writer) error {
	info := CurrentVersion()
	if args.JSON {
		return NewJSONResponse("version", info).Write(out)
	}
	fmt.Fprintf(out, "authapp %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.GitCommit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  Platform:   %s\n", info.Platform)
	return nil
}

// HandleHelp prints usage. An unknown command is reported as a usage error.
func HandleHelp(args Args, out io.Writer) error {
	fmt.Fprint(out, usageText)
	if args.Unknown != "" {
		return &UsageError{Message: fmt.Sprintf("unknown command %q", args.Unknown)}
	}
	return nil
}
