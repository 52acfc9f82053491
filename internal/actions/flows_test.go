package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitre.dev/gitre/internal/actions"
	"gitre.dev/gitre/internal/git"
	"gitre.dev/gitre/internal/runtime"
	"gitre.dev/gitre/internal/tui"
	"gitre.dev/gitre/testhelpers"
)

// newRealContext builds a runtime context backed by real git for flow tests.
func newRealContext(t *testing.T) *runtime.Context {
	t.Helper()
	t.Setenv(git.SequenceEditorEnv, testhelpers.GNUSedSequenceEditor)
	t.Cleanup(func() {
		git.SetDryRun(false)
		git.SetEcho(nil)
	})
	return &runtime.Context{
		Context: context.Background(),
		Runner:  git.NewRealRunner(),
		Splog:   tui.NewSplog(false),
		Force:   true,
	}
}

// threeCommitSetup creates commits "first", "second", "third" touching
// separate files.
func threeCommitSetup(s *testhelpers.Scene) error {
	if err := s.Repo.CreateChangeAndCommit("first", "1"); err != nil {
		return err
	}
	if err := s.Repo.CreateChangeAndCommit("second", "2"); err != nil {
		return err
	}
	return s.Repo.CreateChangeAndCommit("third", "3")
}

func TestEditDoneFlow(t *testing.T) {
	scene := testhelpers.NewScene(t, threeCommitSetup)
	ctx := newRealContext(t)

	target, err := scene.Repo.GetRevision("HEAD~1")
	require.NoError(t, err)

	// Start editing the middle commit
	require.NoError(t, actions.EditAction(ctx, actions.EditOptions{Commit: target}))
	require.True(t, scene.Repo.RebaseInProgress())

	// Stage a change to fold into it
	require.NoError(t, scene.Repo.CreateChange("amended content", "2", false))

	require.NoError(t, actions.DoneAction(ctx))
	require.False(t, scene.Repo.RebaseInProgress())

	// The middle commit now carries the change, history is otherwise intact
	content, err := scene.Repo.ShowFileAtRevision("HEAD~1", "2_test.txt")
	require.NoError(t, err)
	require.Equal(t, "amended content", content)

	messages, err := scene.Repo.ListCurrentBranchCommitMessages()
	require.NoError(t, err)
	require.Equal(t, []string{"third", "second", "first"}, messages)

	branch, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", branch)
}

func TestEditRelativeRevisionPausesOnTarget(t *testing.T) {
	scene := testhelpers.NewScene(t, threeCommitSetup)
	ctx := newRealContext(t)

	// Remember which commit HEAD~1 names before the rebase detaches HEAD.
	target, err := scene.Repo.GetRevision("HEAD~1")
	require.NoError(t, err)

	require.NoError(t, actions.EditAction(ctx, actions.EditOptions{Commit: "HEAD~1"}))
	require.True(t, scene.Repo.RebaseInProgress())

	paused, err := ctx.Runner.RebaseHead()
	require.NoError(t, err)
	require.Equal(t, target, paused)

	require.NoError(t, actions.AbortAction(ctx))
}

func TestEditAbortFlow(t *testing.T) {
	scene := testhelpers.NewScene(t, threeCommitSetup)
	ctx := newRealContext(t)

	before, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)

	target, err := scene.Repo.GetRevision("HEAD~1")
	require.NoError(t, err)

	require.NoError(t, actions.EditAction(ctx, actions.EditOptions{Commit: target}))
	require.True(t, scene.Repo.RebaseInProgress())

	require.NoError(t, actions.AbortAction(ctx))
	require.False(t, scene.Repo.RebaseInProgress())

	after, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestStashFlow(t *testing.T) {
	scene := testhelpers.NewScene(t, threeCommitSetup)
	ctx := newRealContext(t)

	target, err := scene.Repo.GetRevision("HEAD~1")
	require.NoError(t, err)

	// Stage the change destined for the middle commit
	require.NoError(t, scene.Repo.CreateChange("stashed change", "2", false))

	require.NoError(t, actions.EditAction(ctx, actions.EditOptions{Commit: target, Stash: true}))

	// The whole pipeline ran: rebase finished, change landed, stash clean
	require.False(t, scene.Repo.RebaseInProgress())

	content, err := scene.Repo.ShowFileAtRevision("HEAD~1", "2_test.txt")
	require.NoError(t, err)
	require.Equal(t, "stashed change", content)

	count, err := scene.Repo.StashCount()
	require.NoError(t, err)
	require.Equal(t, 0, count)

	messages, err := scene.Repo.ListCurrentBranchCommitMessages()
	require.NoError(t, err)
	require.Equal(t, []string{"third", "second", "first"}, messages)
}

func TestStashFlowNothingStaged(t *testing.T) {
	scene := testhelpers.NewScene(t, threeCommitSetup)
	ctx := newRealContext(t)

	target, err := scene.Repo.GetRevision("HEAD~1")
	require.NoError(t, err)

	// No staged changes: the push/pop steps are skipped but the sequence
	// still runs to completion.
	require.NoError(t, actions.EditAction(ctx, actions.EditOptions{Commit: target, Stash: true}))

	require.False(t, scene.Repo.RebaseInProgress())

	messages, err := scene.Repo.ListCurrentBranchCommitMessages()
	require.NoError(t, err)
	require.Equal(t, []string{"third", "second", "first"}, messages)
}

func TestDoneConflictLeavesRebasePaused(t *testing.T) {
	scene := testhelpers.NewScene(t, threeCommitSetup)
	ctx := newRealContext(t)

	target, err := scene.Repo.GetRevision("HEAD~1")
	require.NoError(t, err)

	require.NoError(t, actions.EditAction(ctx, actions.EditOptions{Commit: target}))

	// Stage a file the following commit also introduces, forcing an
	// add/add conflict when the rebase continues.
	require.NoError(t, scene.Repo.CreateChange("conflicting content", "3", false))

	err = actions.DoneAction(ctx)
	require.Error(t, err)
	require.True(t, scene.Repo.RebaseInProgress())

	// Abort recovers the original state
	require.NoError(t, actions.AbortAction(ctx))
	require.False(t, scene.Repo.RebaseInProgress())
}

func TestDryRunFlow(t *testing.T) {
	scene := testhelpers.NewScene(t, threeCommitSetup)
	t.Setenv(git.SequenceEditorEnv, testhelpers.GNUSedSequenceEditor)
	t.Cleanup(func() {
		git.SetDryRun(false)
		git.SetEcho(nil)
	})

	before, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)

	target, err := scene.Repo.GetRevision("HEAD~1")
	require.NoError(t, err)

	ctx, err := runtime.NewContext(context.Background(), runtime.Options{DryRun: true})
	require.NoError(t, err)

	require.NoError(t, actions.EditAction(ctx, actions.EditOptions{Commit: target}))
	require.NoError(t, actions.DoneAction(ctx))
	require.NoError(t, actions.AbortAction(ctx))

	// Nothing mutated
	require.False(t, scene.Repo.RebaseInProgress())
	after, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)
	require.Equal(t, before, after)

	count, err := scene.Repo.StashCount()
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
