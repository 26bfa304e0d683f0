package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/tommorgenstern/gradus/internal/launch"
	"github.com/tommorgenstern/gradus/internal/manifest"
	"github.com/tommorgenstern/gradus/internal/paths"
)

// Represents the 'gradus up' command.
type UpCmd struct {
	Manifest string `arg:"" optional:"" default:"deploy.yml" help:"Path to the deploy manifest." type:"path"`
	Archive  string `help:"Image archive to launch. Defaults to the last build output." placeholder:"PATH" type:"path"`
	Name     string `help:"Container name override." placeholder:"NAME"`
}

// Executes the up command.
//
// The container runs the image entrypoint as built: the declared PORT, the
// non-root user and the working directory all come from the image config.
func (c *UpCmd) Run(ctx context.Context) error {
	m, err := manifest.Load(c.Manifest)
	if err != nil {
		return err
	}

	archive := c.Archive
	if archive == "" {
		archive = filepath.Join(paths.Images(), m.App, "image.tar")
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctr, err := launch.New(rt).Up(ctx, launch.Options{
		App:     m.App,
		Archive: archive,
		Name:    c.Name,
	})
	if err != nil {
		return err
	}

	slog.Info("application started", "app", m.App, "container", ctr.ID(), "port", m.Port)
	fmt.Println(ctr.ID())
	return nil
}
