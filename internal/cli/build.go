package cli

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/tommorgenstern/gradus/internal/build"
	"github.com/tommorgenstern/gradus/internal/manifest"
	"github.com/tommorgenstern/gradus/internal/paths"
)

// Represents the 'gradus build' command.
type BuildCmd struct {
	Manifest  string   `arg:"" optional:"" default:"deploy.yml" help:"Path to the deploy manifest." type:"path"`
	Root      string   `help:"Source root for copies and the dependency manifest. Defaults to the manifest directory." placeholder:"DIR" type:"path"`
	Git       string   `help:"Clone this repository as the source root instead." placeholder:"URL"`
	Output    string   `help:"Output directory for the image archive." placeholder:"DIR" type:"path"`
	Platforms []string `help:"Target platforms (e.g. linux/amd64). Defaults to the host platform." placeholder:"OS/ARCH"`
}

// Executes the build command.
func (c *BuildCmd) Run(ctx context.Context) error {
	m, err := manifest.Load(c.Manifest)
	if err != nil {
		return err
	}
	warnings, err := m.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	root := c.Root
	if c.Git != "" {
		dir, cleanup, err := build.CloneSource(ctx, c.Git)
		if err != nil {
			return err
		}
		defer cleanup()
		root = dir
	} else if root == "" {
		root = filepath.Dir(c.Manifest)
	}

	output := c.Output
	if output == "" {
		output = filepath.Join(paths.Images(), m.App)
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := build.Run(ctx, rt, build.Options{
		Manifest:  m,
		Output:    output,
		Root:      root,
		Platforms: c.Platforms,
	})
	if err != nil {
		return err
	}

	slog.Info("build complete", "app", m.App, "output", result.Output)
	return nil
}
