// Package git provides a wrapper around git commands and go-git for
// repository operations.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	gitreerrors "gitre.dev/gitre/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// EchoFunc receives the shell-quoted form of every git invocation.
type EchoFunc func(format string, args ...interface{})

// CommandRunner handles execution of git commands
type CommandRunner struct {
	dryRun bool
	echo   EchoFunc
}

// defaultRunner is the global runner used by the package-level functions
var defaultRunner = &CommandRunner{}

// SetDryRun enables or disables dry-run mode on the default runner.
// In dry-run mode mutating commands are echoed but never executed.
func SetDryRun(dryRun bool) {
	defaultRunner.dryRun = dryRun
}

// IsDryRun reports whether the default runner is in dry-run mode.
func IsDryRun() bool {
	return defaultRunner.dryRun
}

// SetEcho installs the function used to echo git invocations.
func SetEcho(echo EchoFunc) {
	defaultRunner.echo = echo
}

// echoCommand logs the full command line. Mutating commands that are being
// skipped in dry-run mode use the "# " prefix, everything else "> ".
func (r *CommandRunner) echoCommand(skipped bool, args []string) {
	if r.echo == nil {
		return
	}
	prefix := "> "
	if skipped {
		prefix = "# "
	}
	r.echo("%s%s", prefix, shellquote.Join(append([]string{"git"}, args...)...))
}

// Run executes a mutating git command with the given context and returns the
// output. In dry-run mode the command is echoed and skipped.
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, false, args...)
}

// RunWithEnv executes a mutating git command with extra environment variables.
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return r.runInternal(ctx, env, false, args...)
}

// Query executes a read-only git command. Queries run even in dry-run mode
// so flow decisions reflect the actual repository state.
func (r *CommandRunner) Query(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, true, args...)
}

// runInternal is the internal implementation shared by Run and Query
func (r *CommandRunner) runInternal(ctx context.Context, env []string, query bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	skipped := r.dryRun && !query
	r.echoCommand(skipped, args)
	if skipped {
		return "", nil
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", gitreerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", gitreerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunGitCommand executes a mutating git command using the default runner.
// It uses context.Background() with a default timeout.
func RunGitCommand(args ...string) (string, error) {
	return defaultRunner.Run(context.Background(), args...)
}

// RunGitCommandWithContext executes a mutating git command with the given
// context using the default runner.
func RunGitCommandWithContext(ctx context.Context, args ...string) (string, error) {
	return defaultRunner.Run(ctx, args...)
}

// RunGitCommandWithEnv executes a mutating git command with environment variables
func RunGitCommandWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return defaultRunner.RunWithEnv(ctx, env, args...)
}

// RunGitQuery executes a read-only git command using the default runner.
func RunGitQuery(ctx context.Context, args ...string) (string, error) {
	return defaultRunner.Query(ctx, args...)
}

// Runner defines the interface for git operations used by the action flows.
// This allows the flows to be exercised with both real git and mock
// implementations.
type Runner interface {
	// Staging and stash
	HasStagedChanges(ctx context.Context) (bool, error)
	StashPushStaged(ctx context.Context) error
	StashPop(ctx context.Context) error
	StashDrop(ctx context.Context, stashID string) error
	FindReStash() (string, error)

	// Rebase
	RebaseEdit(ctx context.Context, commit string) error
	RebaseContinue(ctx context.Context) error
	RebaseAbort(ctx context.Context) error
	IsRebaseInProgress(ctx context.Context) bool
	RebaseHead() (string, error)

	// Commit
	AmendCommit(ctx context.Context) error
}

// NewRealRunner returns a standard implementation of Runner that calls
// the package-level git functions.
func NewRealRunner() Runner {
	return &realRunner{}
}

// realRunner implements Runner by calling the actual git package functions
type realRunner struct{}

func (r *realRunner) HasStagedChanges(ctx context.Context) (bool, error) {
	return HasStagedChanges(ctx)
}

func (r *realRunner) StashPushStaged(ctx context.Context) error {
	return StashPushStaged(ctx)
}

func (r *realRunner) StashPop(ctx context.Context) error {
	return StashPop(ctx)
}

func (r *realRunner) StashDrop(ctx context.Context, stashID string) error {
	return StashDrop(ctx, stashID)
}

func (r *realRunner) FindReStash() (string, error) {
	return FindReStash()
}

func (r *realRunner) RebaseEdit(ctx context.Context, commit string) error {
	return RebaseEdit(ctx, commit)
}

func (r *realRunner) RebaseContinue(ctx context.Context) error {
	return RebaseContinue(ctx)
}

func (r *realRunner) RebaseAbort(ctx context.Context) error {
	return RebaseAbort(ctx)
}

func (r *realRunner) IsRebaseInProgress(ctx context.Context) bool {
	return IsRebaseInProgress(ctx)
}

func (r *realRunner) RebaseHead() (string, error) {
	return RebaseHead()
}

func (r *realRunner) AmendCommit(ctx context.Context) error {
	return AmendCommit(ctx)
}
