package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/kballard/go-shellquote"
)

// SequenceEditorEnv is consulted by RebaseEdit. When set it overrides the
// command used to rewrite the rebase todo list; the default re-invokes the
// current executable with the hidden todo-edit command.
const SequenceEditorEnv = "GITRE_SEQUENCE_EDITOR"

// sequenceEditorCommand returns the editor command that marks the target
// commit for editing in the rebase todo list.
func sequenceEditorCommand() (string, error) {
	if override := os.Getenv(SequenceEditorEnv); override != "" {
		return override, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate own executable: %w", err)
	}
	return shellquote.Join(exe, "todo-edit"), nil
}

// RebaseEdit starts an interactive rebase with the given commit marked for
// editing, without ever opening the todo list in an editor. On success the
// rebase is paused on the target commit, ready to be amended.
func RebaseEdit(ctx context.Context, commit string) error {
	editor, err := sequenceEditorCommand()
	if err != nil {
		return err
	}
	_, err = RunGitCommandWithEnv(ctx,
		[]string{"GIT_SEQUENCE_EDITOR=" + editor},
		"rebase", "-i", commit+"^")
	if err != nil {
		return fmt.Errorf("failed to start interactive rebase: %w", err)
	}
	return nil
}

// RewriteTodoMarkEdit rewrites a rebase todo list so the first picked
// commit is marked for editing. `rebase -i <commit>^` lists the target
// commit first, so this pauses the rebase exactly there.
func RewriteTodoMarkEdit(todo []byte) []byte {
	lines := strings.Split(string(todo), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "pick ") {
			lines[i] = "edit " + strings.TrimPrefix(line, "pick ")
			break
		}
	}
	return []byte(strings.Join(lines, "\n"))
}

// RebaseContinue continues an in-progress rebase. core.editor is disabled so
// git does not stop to re-edit the commit message.
func RebaseContinue(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "-c", "core.editor=true", "rebase", "--continue")
	if err != nil {
		return fmt.Errorf("rebase continue failed: %w", err)
	}
	return nil
}

// RebaseAbort aborts an in-progress rebase
func RebaseAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// IsRebaseInProgress checks if a rebase is currently in progress
func IsRebaseInProgress(ctx context.Context) bool {
	// Check for .git/rebase-merge or .git/rebase-apply directories
	// This is more reliable than checking REBASE_HEAD which can persist after rebase
	gitDir, err := RunGitQuery(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}

	// Interactive rebase
	if _, err := os.Stat(gitDir + "/rebase-merge"); err == nil {
		return true
	}
	// Non-interactive rebase
	if _, err := os.Stat(gitDir + "/rebase-apply"); err == nil {
		return true
	}
	return false
}

// RebaseHead returns the commit the paused rebase is stopped on (REBASE_HEAD)
func RebaseHead() (string, error) {
	repo, err := openRepo()
	if err != nil {
		return "", err
	}

	refs := []plumbing.ReferenceName{
		"refs/rebase-merge/head",
		"refs/rebase-apply/head",
		"REBASE_HEAD",
	}

	for _, refName := range refs {
		ref, err := repo.Reference(refName, true)
		if err == nil {
			return ref.Hash().String(), nil
		}
	}

	return "", fmt.Errorf("rebase head not found")
}
