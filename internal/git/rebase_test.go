package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitre.dev/gitre/internal/git"
	"gitre.dev/gitre/testhelpers"
)

func useSedSequenceEditor(t *testing.T) {
	t.Helper()
	t.Setenv(git.SequenceEditorEnv, testhelpers.GNUSedSequenceEditor)
}

func TestRewriteTodoMarkEdit(t *testing.T) {
	t.Run("marks first pick for editing", func(t *testing.T) {
		todo := []byte("pick abc123 first\npick def456 second\n")
		got := git.RewriteTodoMarkEdit(todo)
		require.Equal(t, "edit abc123 first\npick def456 second\n", string(got))
	})

	t.Run("leaves later picks alone", func(t *testing.T) {
		todo := []byte("pick aaa one\npick bbb two\npick ccc three\n")
		got := git.RewriteTodoMarkEdit(todo)
		require.Equal(t, "edit aaa one\npick bbb two\npick ccc three\n", string(got))
	})

	t.Run("skips comments before the first pick", func(t *testing.T) {
		todo := []byte("# Rebase instructions\npick abc123 first\n")
		got := git.RewriteTodoMarkEdit(todo)
		require.Equal(t, "# Rebase instructions\nedit abc123 first\n", string(got))
	})

	t.Run("no pick lines is a no-op", func(t *testing.T) {
		todo := []byte("noop\n")
		require.Equal(t, "noop\n", string(git.RewriteTodoMarkEdit(todo)))
	})
}

func TestRebaseEdit(t *testing.T) {
	useSedSequenceEditor(t)

	t.Run("pauses the rebase on the target commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("first", "1"); err != nil {
				return err
			}
			if err := s.Repo.CreateChangeAndCommit("second", "2"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("third", "3")
		})

		target, err := scene.Repo.GetRevision("HEAD~1")
		require.NoError(t, err)

		err = git.RebaseEdit(context.Background(), target)
		require.NoError(t, err)

		require.True(t, git.IsRebaseInProgress(context.Background()))

		// HEAD is detached at the target commit
		head, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, target, head)

		require.NoError(t, git.RebaseAbort(context.Background()))
	})

	t.Run("fails for an unknown revision", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.RebaseEdit(context.Background(), "no-such-revision")
		require.Error(t, err)
		require.False(t, scene.Repo.RebaseInProgress())
	})
}

func TestRebaseContinue(t *testing.T) {
	useSedSequenceEditor(t)

	t.Run("finishes a paused rebase", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("first", "1"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("second", "2")
		})

		target, err := scene.Repo.GetRevision("HEAD")
		require.NoError(t, err)

		require.NoError(t, git.RebaseEdit(context.Background(), target))
		require.True(t, git.IsRebaseInProgress(context.Background()))

		require.NoError(t, git.RebaseContinue(context.Background()))
		require.False(t, git.IsRebaseInProgress(context.Background()))

		branch, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})

	t.Run("fails when no rebase is in progress", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.Error(t, git.RebaseContinue(context.Background()))
	})
}

func TestRebaseAbort(t *testing.T) {
	useSedSequenceEditor(t)

	t.Run("restores the branch tip", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("first", "1"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("second", "2")
		})

		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		require.NoError(t, git.RebaseEdit(context.Background(), before))
		require.NoError(t, git.RebaseAbort(context.Background()))

		require.False(t, git.IsRebaseInProgress(context.Background()))
		after, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, before, after)
	})
}

func TestIsRebaseInProgress(t *testing.T) {
	t.Run("returns false when no rebase", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.False(t, git.IsRebaseInProgress(context.Background()))
	})
}

func TestRebaseHead(t *testing.T) {
	useSedSequenceEditor(t)

	t.Run("returns the paused commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("first", "1"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("second", "2")
		})

		target, err := scene.Repo.GetRevision("HEAD")
		require.NoError(t, err)

		require.NoError(t, git.RebaseEdit(context.Background(), target))

		head, err := git.RebaseHead()
		require.NoError(t, err)
		require.Equal(t, target, head)

		require.NoError(t, git.RebaseAbort(context.Background()))
	})
}
