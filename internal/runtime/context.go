// Package runtime provides a context type that holds the git runner and
// logger for use throughout the application. This avoids passing multiple
// parameters.
package runtime

import (
	"context"
	"fmt"

	"gitre.dev/gitre/internal/config"
	"gitre.dev/gitre/internal/git"
	"gitre.dev/gitre/internal/tui"
)

// Context provides access to the git runner and output for the action flows
type Context struct {
	Context  context.Context
	Runner   git.Runner
	Splog    *tui.Splog
	RepoRoot string
	DryRun   bool
	Force    bool
}

// Options control how the runtime context is assembled from flags and the
// repository configuration.
type Options struct {
	Verbose bool
	DryRun  bool
	Force   bool
}

// NewContext creates a context backed by a real git runner. Dry-run mode
// implies verbose so the suppressed commands are visible.
func NewContext(ctx context.Context, opts Options) (*Context, error) {
	if err := git.InitDefaultRepo(); err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	cfg, err := config.GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	verbose := opts.Verbose || opts.DryRun || cfg.IsVerbose()
	splog, err := tui.NewSplogWithConfig(verbose, cfg.GetLogFile())
	if err != nil {
		return nil, err
	}

	git.SetDryRun(opts.DryRun)
	git.SetEcho(splog.Debug)

	return &Context{
		Context:  ctx,
		Runner:   git.NewRealRunner(),
		Splog:    splog,
		RepoRoot: repoRoot,
		DryRun:   opts.DryRun,
		Force:    opts.Force,
	}, nil
}
