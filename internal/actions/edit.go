package actions

import (
	"gitre.dev/gitre/internal/git"
	"gitre.dev/gitre/internal/runtime"
)

// EditOptions contains options for the edit flow
type EditOptions struct {
	// Commit is the revision to rebase-edit.
	Commit string
	// Stash stashes the staged changes around the rebase start and
	// auto-finishes with the done flow.
	Stash bool
}

// EditAction starts an interactive rebase paused on the target commit.
//
// In stash mode the staged changes are pushed to the stash first, popped
// once the rebase has paused, and the done flow runs immediately so the
// staged changes are folded into the target commit in one invocation.
func EditAction(ctx *runtime.Context, opts EditOptions) error {
	runner := ctx.Runner
	splog := ctx.Splog

	stashed := false
	if opts.Stash {
		staged, err := runner.HasStagedChanges(ctx.Context)
		if err != nil {
			return err
		}
		if staged {
			if err := runner.StashPushStaged(ctx.Context); err != nil {
				splog.Error("Failed to stash staged changes.")
				return err
			}
			stashed = true
		} else {
			splog.Warn("No staged changes; nothing to stash.")
		}
	}

	// Resolve the description before the rebase starts. Once it pauses,
	// HEAD is detached on the target, so a relative revision like HEAD~2
	// would resolve against the wrong commit.
	summary := git.CommitSummary(opts.Commit)

	if err := runner.RebaseEdit(ctx.Context, opts.Commit); err != nil {
		splog.Error("Failed to start interactive rebase.")

		// Put the stashed changes back where they were
		if stashed {
			splog.Debug("Restoring stash...")
			if popErr := runner.StashPop(ctx.Context); popErr != nil {
				splog.Error("Failed to restore stash after rebase failure.")
				splog.Error("To recover your stashed changes, check 'git stash list'.")
			}
		}

		return err
	}

	if opts.Stash {
		if stashed {
			if err := runner.StashPop(ctx.Context); err != nil {
				splog.Error("Failed to apply stash to commit. The changes are saved in the stash.")
				splog.Error("Fix any conflicts, then run 'git re --done'.")
				splog.Error("To cancel the rebase, run 'git re --abort'.")
				return err
			}
		}
		return DoneAction(ctx)
	}

	// Report the commit the rebase actually paused on.
	if !ctx.DryRun {
		if sha, err := runner.RebaseHead(); err == nil {
			summary = git.CommitSummary(sha)
		}
	}

	splog.Info("Rebase-editing %s. Stage your changes, then run 'git re --done'.", summary)
	return nil
}
