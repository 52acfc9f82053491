package git

import (
	"context"
	"fmt"
	"strings"

	gitreerrors "gitre.dev/gitre/internal/errors"
)

// StashMarker is the message attached to stash entries created by git-re.
// Leftover entries are recognized and dropped by the done and abort flows.
const StashMarker = "git-re--stash"

// StashPushStaged stashes only the staged changes, leaving the index and
// worktree clean so the rebase can start. Requires git 2.35 or newer.
func StashPushStaged(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "stash", "push", "--staged", "-m", StashMarker)
	if err != nil {
		return fmt.Errorf("stash push failed: %w", err)
	}
	return nil
}

// StashPop pops the most recent stash, restoring the recorded index state
// so the popped changes come back staged.
func StashPop(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "stash", "pop", "--index")
	if err != nil {
		return fmt.Errorf("stash pop failed: %w", err)
	}
	return nil
}

// StashDrop drops the given stash entry
func StashDrop(ctx context.Context, stashID string) error {
	_, err := RunGitCommandWithContext(ctx, "stash", "drop", stashID)
	if err != nil {
		return fmt.Errorf("stash drop failed: %w", err)
	}
	return nil
}

// FindReStash returns the stash ID (e.g. "stash@{0}") of the entry created
// by git-re, or ErrStashNotFound if no such entry exists.
func FindReStash() (string, error) {
	output, err := RunGitQuery(context.Background(), "stash", "list")
	if err != nil {
		return "", fmt.Errorf("stash list failed: %w", err)
	}

	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, StashMarker) {
			id, _, found := strings.Cut(line, ":")
			if found {
				return id, nil
			}
		}
	}

	return "", gitreerrors.ErrStashNotFound
}
