package cli

import (
	"context"
	"fmt"

	"github.com/tommorgenstern/gradus/internal/launch"
)

// Represents the 'gradus status' command.
type StatusCmd struct {
	Container string `arg:"" help:"Container ID to inspect."`
}

// Executes the status command.
func (c *StatusCmd) Run(ctx context.Context) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	state, err := launch.New(rt).Status(ctx, c.Container)
	if err != nil {
		return err
	}

	fmt.Println(state)
	return nil
}
