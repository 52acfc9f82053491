package git

import (
	"context"
	"errors"
	"fmt"

	gitreerrors "gitre.dev/gitre/internal/errors"
)

// HasStagedChanges checks if there are staged changes. `git diff --cached
// --quiet` exits 1 when the index differs from HEAD, 0 when it is clean.
func HasStagedChanges(ctx context.Context) (bool, error) {
	_, err := RunGitQuery(ctx, "diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}

	var cmdErr *gitreerrors.GitCommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("failed to check staged changes: %w", err)
}
