package git

import (
	"context"
	"fmt"
)

// AmendCommit amends the current commit with the staged changes, keeping
// the existing commit message.
func AmendCommit(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "commit", "--amend", "--no-edit")
	if err != nil {
		return fmt.Errorf("failed to amend commit: %w", err)
	}
	return nil
}
