package session

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Editor opens a file for interactive editing and blocks until the user is
// done. Tests substitute a fake that rewrites the file programmatically.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// CommandEditor spawns an external editor process with the file path as its
// single argument, wired to the terminal. A non-zero exit or spawn failure
// aborts the edit session.
type CommandEditor struct {
	Command string
}

func (e *CommandEditor) Edit(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, e.Command, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", e.Command, err)
	}
	return nil
}
