// Package cli wires the git-re commands and flags to the action flows.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitre.dev/gitre/internal/actions"
	gitreerrors "gitre.dev/gitre/internal/errors"
	"gitre.dev/gitre/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		done    bool
		abort   bool
		stash   bool
		verbose bool
		dryRun  bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "git-re [flags] [commit]",
		Short: "Rebase-edit git commits",
		Long: `git-re simplifies editing a past git commit.

Given a commit, it starts an interactive rebase paused on that commit so it
can be amended. Stage your changes, then run 'git re --done' to amend the
commit and finish the rebase, or 'git re --abort' to cancel.

With --stash, the currently staged changes are carried through the whole
workflow in a single invocation: stashed, applied to the paused commit,
amended, and the rebase continued.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}

			if err := validateMode(target, done, abort, stash); err != nil {
				return err
			}

			ctx, err := runtime.NewContext(cmd.Context(), runtime.Options{
				Verbose: verbose,
				DryRun:  dryRun,
				Force:   force,
			})
			if err != nil {
				return err
			}
			defer func() { _ = ctx.Splog.Close() }()

			switch {
			case abort:
				return actions.AbortAction(ctx)
			case done:
				return actions.DoneAction(ctx)
			default:
				return actions.EditAction(ctx, actions.EditOptions{
					Commit: target,
					Stash:  stash,
				})
			}
		},
	}

	cmd.Flags().BoolVar(&done, "done", false, "Amend the current commit and continue the rebase.")
	cmd.Flags().BoolVar(&abort, "abort", false, "Abort the rebase operation.")
	cmd.Flags().BoolVarP(&stash, "stash", "s", false, "Stash staged changes, rebase-edit, pop, amend, and continue the rebase.")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every git invocation during execution.")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making any changes.")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not prompt for confirmation when aborting.")

	// Flag parse failures are usage errors, not execution errors
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return gitreerrors.NewUsageError("%v", err)
	})

	cmd.AddCommand(newTodoEditCmd())

	return cmd
}

// validateMode enforces that exactly one primary action is requested.
func validateMode(target string, done, abort, stash bool) error {
	switch {
	case abort && target != "":
		return gitreerrors.NewUsageError("--abort cannot be used with a commit argument")
	case abort && stash:
		return gitreerrors.NewUsageError("--abort cannot be used with --stash")
	case abort && done:
		return gitreerrors.NewUsageError("--abort cannot be used with --done")
	case done && target != "":
		return gitreerrors.NewUsageError("--done cannot be used with a commit argument")
	case done && stash:
		return gitreerrors.NewUsageError("--done cannot be used with --stash")
	case !done && !abort && target == "":
		return gitreerrors.NewUsageError("a commit argument is required unless --done or --abort is given")
	}
	return nil
}
