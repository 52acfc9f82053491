// Package actions implements the git-re workflows: starting a rebase-edit,
// finishing it with amend + continue, and aborting it. Each action is a
// fixed sequence of git invocations; a failing step stops the sequence and
// the underlying git error is surfaced to the caller.
package actions
