package actions

import (
	"errors"

	gitreerrors "gitre.dev/gitre/internal/errors"
	"gitre.dev/gitre/internal/runtime"
)

// DoneAction amends the paused commit with the staged changes and continues
// the rebase. Any leftover stash entry from a stash-mode invocation is
// dropped afterwards.
func DoneAction(ctx *runtime.Context) error {
	runner := ctx.Runner
	splog := ctx.Splog

	// The guard is skipped in dry-run mode so the would-be sequence is
	// still printed.
	if !ctx.DryRun && !runner.IsRebaseInProgress(ctx.Context) {
		splog.Error("No rebase in progress. Start one with 'git re <commit>'.")
		return gitreerrors.ErrRebaseNotInProgress
	}

	if err := runner.AmendCommit(ctx.Context); err != nil {
		splog.Error("Failed to amend the current commit.")
		return err
	}

	if err := runner.RebaseContinue(ctx.Context); err != nil {
		splog.Error("Failed to finish rebase.")
		splog.Error("Fix any conflicts, then run 'git re --done'.")
		splog.Error("To cancel the rebase, run 'git re --abort'.")
		return err
	}

	cleanupStash(ctx)

	splog.Info("Successfully amended commit and continued rebase.")
	return nil
}

// cleanupStash drops the leftover stash entry created by a stash-mode
// invocation, if one exists. Failure to drop is a warning, not an error.
func cleanupStash(ctx *runtime.Context) {
	stashID, err := ctx.Runner.FindReStash()
	if err != nil {
		if !errors.Is(err, gitreerrors.ErrStashNotFound) {
			ctx.Splog.Warn("Failed to inspect the stash list: %v", err)
		}
		return
	}

	ctx.Splog.Debug("Removing leftover stash entry %s...", stashID)
	if err := ctx.Runner.StashDrop(ctx.Context, stashID); err != nil {
		ctx.Splog.Warn("Failed to remove leftover stash entry.")
	}
}
