package cli

import (
	"context"
	"log/slog"

	"github.com/tommorgenstern/gradus/internal/launch"
)

// Represents the 'gradus down' command.
type DownCmd struct {
	Container string `arg:"" help:"Container ID to stop and remove."`
}

// Executes the down command.
func (c *DownCmd) Run(ctx context.Context) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := launch.New(rt).Down(ctx, c.Container); err != nil {
		return err
	}

	slog.Info("application stopped", "container", c.Container)
	return nil
}
