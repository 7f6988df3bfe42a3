// Package alert announces a finished interval. Playback is best-effort:
// errors are dropped and nothing waits for the sound to end.
package alert

import (
	"errors"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

// Player plays the sound identified by resource.
type Player interface {
	Play(resource string) error
}

// Command starts an external player with the resource as its last argument.
type Command struct {
	Args []string
}

func (c Command) Play(resource string) error {
	if len(c.Args) == 0 {
		return errors.New("alert command: empty")
	}
	args := append(append([]string{}, c.Args[1:]...), resource)
	cmd := exec.Command(c.Args[0], args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child without blocking the caller.
	go cmd.Wait()
	return nil
}

// New returns a Command player for args, or nil when no command is
// configured.
func New(args []string) Player {
	if len(args) == 0 {
		return nil
	}
	return Command{Args: args}
}

// Fire returns a command that plays resource and produces no message.
func Fire(p Player, resource string) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		_ = p.Play(resource)
		return nil
	}
}
