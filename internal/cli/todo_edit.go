package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitre.dev/gitre/internal/git"
)

// newTodoEditCmd creates the hidden todo-edit command. git-re installs
// itself as GIT_SEQUENCE_EDITOR and git invokes it with the rebase todo
// file; rewriting the first pick to edit pauses the rebase on the target
// commit without any user interaction.
func newTodoEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "todo-edit <file>",
		Short:  "Mark the first commit of a rebase todo list for editing",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]

			todo, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read todo list: %w", err)
			}

			if err := os.WriteFile(path, git.RewriteTodoMarkEdit(todo), 0600); err != nil {
				return fmt.Errorf("failed to write todo list: %w", err)
			}
			return nil
		},
	}
}
