package cli

import (
	"context"
	"fmt"

	"github.com/tommorgenstern/gradus/internal"
)

// Represents the 'gradus version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
