// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/auth"
	"github.com/liongatetechnology/authapp/internal/config"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/mockremote"
	"github.com/liongatetechnology/authapp/internal/sessionstore"
)

// fakePrompter answers prompts from a queue.
type fakePrompter struct {
	answers []string
	asked   []string
	err     error
}

func (p *fakePrompter) next(label string) (string, error) {
	p.asked = append(p.asked, label)
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *fakePrompter) Prompt(label string) (string, error)         { return p.next(label) }
func (p *fakePrompter) PasswordPrompt(label string) (string, error) { return p.next(label) }
func (p *fakePrompter) Close() error                                { return nil }

// newTestEnv starts a mock remote with the test account and returns an Env
// pointed at it, writing to out.
func newTestEnv(t *testing.T) (*Env, *mockremote.Server, *bytes.Buffer) {
	t.Helper()
	remote := mockremote.New("proj", mockremote.WithBcryptCost(bcrypt.MinCost))
	_, err := remote.Seed("jimmuell@aol.com", "12345678", TestAccountName)
	require.NoError(t, err)
	server := httptest.NewServer(remote.Handler())
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Remote.Endpoint = server.URL
	cfg.Remote.ProjectID = "proj"
	cfg.Session.Store = string(sessionstore.KindMemory)

	env, err := NewEnv(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })

	var out bytes.Buffer
	env.Out = &out
	env.ErrOut = &out
	return env, remote, &out
}

func decodeData(t *testing.T, raw []byte, dst interface{}) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.True(t, resp.Success)
	require.NoError(t, json.Unmarshal(resp.Data, dst))
}

// =============================================================================
// LOGIN
// =============================================================================

func TestRunLogin_Success(t *testing.T) {
	env, remote, out := newTestEnv(t)

	err := RunLogin(context.Background(), env, Args{Email: "  JimMuell@aol.com ", Password: "12345678"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Signed in as "+TestAccountName)
	assert.True(t, env.State.Authenticated())
	assert.Equal(t, 1, remote.SessionCount())
}

func TestRunLogin_MissingInfoMakesNoCall(t *testing.T) {
	env, remote, _ := newTestEnv(t)

	err := RunLogin(context.Background(), env, Args{Email: "   ", Password: "12345678"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrMissingInfo))
	assert.Equal(t, "Missing info: Please enter email and password.", err.Error())
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Zero(t, remote.SessionCount())
}

func TestRunLogin_WrongPassword(t *testing.T) {
	env, _, _ := newTestEnv(t)

	err := RunLogin(context.Background(), env, Args{Email: "jimmuell@aol.com", Password: "wrong-password"})
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, ReasonLoginFailed, cmdErr.Reason)
	assert.Equal(t, ExitAuthError, GetExitCode(err))
	assert.False(t, env.State.Authenticated())
}

func TestRunLogin_Prompts(t *testing.T) {
	env, _, _ := newTestEnv(t)
	p := &fakePrompter{answers: []string{"12345678"}}
	env.Prompter = p

	err := RunLogin(context.Background(), env, Args{Email: "jimmuell@aol.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Password: "}, p.asked, "only the missing value is asked for")
}

func TestRunLogin_PromptAborted(t *testing.T) {
	env, _, _ := newTestEnv(t)
	env.Prompter = &fakePrompter{err: ErrPromptAborted}

	err := RunLogin(context.Background(), env, Args{})
	assert.ErrorIs(t, err, ErrPromptAborted)
}

func TestRunLogin_JSON(t *testing.T) {
	env, _, out := newTestEnv(t)

	require.NoError(t, RunLogin(context.Background(), env, Args{JSON: true, Email: "jimmuell@aol.com", Password: "12345678"}))
	var user UserOutput
	decodeData(t, out.Bytes(), &user)
	assert.True(t, user.SignedIn)
	assert.Equal(t, "jimmuell@aol.com", user.Email)
}

// =============================================================================
// REGISTER / WHOAMI / LOGOUT
// =============================================================================

func TestRegisterWhoamiLogout(t *testing.T) {
	env, remote, out := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, RunRegister(ctx, env, Args{Name: "Jane", Email: "jane@example.com", Password: "12345678"}))
	assert.Equal(t, 2, remote.UserCount())
	assert.Equal(t, "Jane", env.State.Current().Name)

	out.Reset()
	require.NoError(t, RunWhoami(ctx, env, Args{}))
	assert.Contains(t, out.String(), "jane@example.com")

	out.Reset()
	require.NoError(t, RunLogout(ctx, env, Args{}))
	assert.Contains(t, out.String(), "Signed out")
	assert.False(t, env.State.Authenticated())
	assert.Zero(t, remote.SessionCount())

	has, err := env.Client.HasSessionCookie(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	out.Reset()
	require.NoError(t, RunWhoami(ctx, env, Args{}))
	assert.Equal(t, "Not signed in.\n", out.String())
}

func TestRunRegister_DuplicateEmail(t *testing.T) {
	env, remote, _ := newTestEnv(t)

	err := RunRegister(context.Background(), env, Args{Name: "Jim", Email: "JIMMUELL@aol.com", Password: "12345678"})
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, ReasonRegisterFailed, cmdErr.Reason)
	assert.True(t, appwrite.IsType(err, appwrite.TypeUserAlreadyExists))
	assert.Equal(t, 1, remote.UserCount())
}

func TestRunRegister_MissingName(t *testing.T) {
	env, remote, _ := newTestEnv(t)

	err := RunRegister(context.Background(), env, Args{Email: "a@b.co", Password: "12345678"})
	require.Error(t, err)
	assert.Equal(t, "Missing info: Please enter name, email, and password.", err.Error())
	assert.Equal(t, 1, remote.UserCount())
}

func TestRunLogout_WithoutSessionKeepsState(t *testing.T) {
	env, _, _ := newTestEnv(t)
	env.State.Set(&appwrite.User{ID: "u1", Email: "x@y.z"})

	err := RunLogout(context.Background(), env, Args{})
	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, ReasonLogoutFailed, cmdErr.Reason)
	assert.True(t, env.State.Authenticated(), "a failed logout keeps the user signed in")
}

// =============================================================================
// SESSION ACROSS RUNS
// =============================================================================

func TestSessionPersistsAcrossRuns(t *testing.T) {
	remote := mockremote.New("proj", mockremote.WithBcryptCost(bcrypt.MinCost))
	_, err := remote.Seed("jimmuell@aol.com", "12345678", TestAccountName)
	require.NoError(t, err)
	server := httptest.NewServer(remote.Handler())
	t.Cleanup(server.Close)

	// Default session settings, so each run reads the same session file.
	cfg := config.Default()
	cfg.Remote.Endpoint = server.URL
	cfg.Remote.ProjectID = "proj"
	cfg.Session.Path = filepath.Join(t.TempDir(), "session.json")
	require.Equal(t, string(sessionstore.KindFile), cfg.Session.Store)

	ctx := context.Background()
	run := func(fn func(*Env) error) (string, error) {
		env, err := NewEnv(ctx, cfg, logging.Nop())
		require.NoError(t, err)
		defer env.Close()
		var out bytes.Buffer
		env.Out = &out
		env.ErrOut = &out
		err = fn(env)
		return out.String(), err
	}

	_, err = run(func(env *Env) error {
		return RunLogin(ctx, env, Args{Email: "jimmuell@aol.com", Password: "12345678"})
	})
	require.NoError(t, err)

	out, err := run(func(env *Env) error { return RunWhoami(ctx, env, Args{}) })
	require.NoError(t, err)
	assert.Contains(t, out, "jimmuell@aol.com")

	out, err = run(func(env *Env) error { return RunLogout(ctx, env, Args{}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	assert.Zero(t, remote.SessionCount())

	out, err = run(func(env *Env) error { return RunWhoami(ctx, env, Args{}) })
	require.NoError(t, err)
	assert.Equal(t, "Not signed in.\n", out)
}

// =============================================================================
// STATUS
// =============================================================================

func TestRunStatus(t *testing.T) {
	env, _, out := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, RunStatus(ctx, env, Args{JSON: true}))
	var st StatusOutput
	decodeData(t, out.Bytes(), &st)
	assert.Equal(t, "proj", st.Project)
	assert.Equal(t, "memory", st.Store)
	assert.False(t, st.HasSessionCookie)
	assert.Nil(t, st.User)

	require.NoError(t, RunLogin(ctx, env, Args{Email: "jimmuell@aol.com", Password: "12345678"}))
	out.Reset()
	require.NoError(t, RunStatus(ctx, env, Args{JSON: true}))
	st = StatusOutput{}
	decodeData(t, out.Bytes(), &st)
	assert.True(t, st.HasSessionCookie)
	require.NotNil(t, st.User)
	assert.Equal(t, "jimmuell@aol.com", st.User.Email)

	out.Reset()
	require.NoError(t, RunStatus(ctx, env, Args{}))
	assert.Contains(t, out.String(), "signed in as jimmuell@aol.com")
}

// =============================================================================
// CONFIG
// =============================================================================

func TestRunConfig(t *testing.T) {
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	require.NoError(t, RunConfig(cfg, Args{Subcommand: "get", ConfigKey: "ui.test_password"}, path, &out))
	assert.Equal(t, "[REDACTED]\n", out.String())

	out.Reset()
	require.NoError(t, RunConfig(cfg, Args{Subcommand: "set", ConfigKey: "ui.theme", ConfigVal: "dark"}, path, &out))
	assert.Equal(t, "dark", cfg.UI.Theme)

	loaded, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.UI.Theme)

	out.Reset()
	require.NoError(t, RunConfig(cfg, Args{Subcommand: "path"}, path, &out))
	assert.Equal(t, path+"\n", out.String())

	out.Reset()
	require.NoError(t, RunConfig(cfg, Args{Subcommand: "keys"}, path, &out))
	assert.Contains(t, out.String(), "remote.endpoint")

	out.Reset()
	require.NoError(t, RunConfig(cfg, Args{Subcommand: "show"}, path, &out))
	assert.NotContains(t, out.String(), "12345678")
}

func TestRunConfig_Errors(t *testing.T) {
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	err := RunConfig(cfg, Args{Subcommand: "set", ConfigKey: "ui.theme", ConfigVal: "purple"}, path, &out)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.Equal(t, "auto", cfg.UI.Theme, "a rejected value leaves the config unchanged")

	err = RunConfig(cfg, Args{Subcommand: "get", ConfigKey: "no.such"}, path, &out)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = RunConfig(cfg, Args{Subcommand: "get"}, path, &out)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = RunConfig(cfg, Args{Subcommand: "frob"}, path, &out)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// MOCK SERVER
// =============================================================================

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunMockServer(t *testing.T) {
	cfg := config.Default()
	cfg.Remote.ProjectID = "proj"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- RunMockServer(ctx, cfg, logging.Nop(), Args{JSON: true, Addr: "127.0.0.1:0"}, out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "endpoint")
	}, 5*time.Second, 10*time.Millisecond)

	var info MockServerOutput
	decodeData(t, []byte(out.String()), &info)
	assert.Equal(t, cfg.UI.TestEmail, info.Seeded)

	// The seeded test account can sign in.
	client, err := appwrite.NewClient(appwrite.Config{Endpoint: info.Endpoint, ProjectID: "proj"})
	require.NoError(t, err)
	user, err := auth.NewService(client).Login(ctx, cfg.UI.TestEmail, cfg.UI.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, TestAccountName, user.Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("mock server did not stop")
	}
}
