package git

import (
	"fmt"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// openRepo opens the repository containing the working directory.
// go-git is used for read-only introspection only; every mutation goes
// through the git CLI.
func openRepo() (*gogit.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return repo, nil
}

// InitDefaultRepo verifies that the working directory is inside a git
// repository.
func InitDefaultRepo() error {
	_, err := openRepo()
	return err
}

// GetRepoRoot returns the root directory of the git repository
func GetRepoRoot() (string, error) {
	repo, err := openRepo()
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// CommitSummary returns "<short-sha> <subject>" for a commit, or just the
// revision string when the lookup fails. Used for log messages only.
func CommitSummary(revision string) string {
	repo, err := openRepo()
	if err != nil {
		return revision
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return revision
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return hash.String()[:7]
	}

	subject := strings.SplitN(commit.Message, "\n", 2)[0]
	return fmt.Sprintf("%s %s", hash.String()[:7], subject)
}
