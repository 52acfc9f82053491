package actions

import (
	gitreerrors "gitre.dev/gitre/internal/errors"
	"gitre.dev/gitre/internal/runtime"
	"gitre.dev/gitre/internal/tui"
)

// AbortAction cancels the in-progress rebase and cleans up any leftover
// stash entry. When attached to a terminal the user is asked to confirm
// unless --force was passed.
func AbortAction(ctx *runtime.Context) error {
	runner := ctx.Runner
	splog := ctx.Splog

	if !ctx.DryRun && !runner.IsRebaseInProgress(ctx.Context) {
		splog.Error("No rebase in progress to abort.")
		return gitreerrors.ErrRebaseNotInProgress
	}

	if !ctx.Force && !ctx.DryRun && tui.IsInteractive() {
		confirmed, err := tui.PromptConfirm("Abort the in-progress rebase? Any conflict resolution so far will be lost.", false)
		if err != nil {
			return err
		}
		if !confirmed {
			splog.Info("Abort canceled.")
			return nil
		}
	}

	if err := runner.RebaseAbort(ctx.Context); err != nil {
		splog.Error("Failed to abort rebase.")
		return err
	}

	cleanupStash(ctx)

	splog.Info("Successfully aborted rebase.")
	return nil
}
