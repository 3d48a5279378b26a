// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli provides command-line parsing and the headless commands of authapp.

Commands share the same auth.Service, state.Store and session store as the
TUI, wired together by NewEnv:

	authapp login [--email E] [--password P]
	authapp register [--name N] [--email E] [--password P]
	authapp logout
	authapp whoami
	authapp status
	authapp mock-server [--addr A] [--no-seed]
	authapp config [show|get|set|path|keys]

Every command returns an error instead of exiting. main decides the exit
code through GetExitCode. With --json, results are written to stdout as a
JSONResponse and errors as a JSON object on stderr.
*/
package cli
