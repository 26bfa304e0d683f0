package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	goruntime "runtime"

	"github.com/tommorgenstern/gradus/internal/manifest"
	"github.com/tommorgenstern/gradus/internal/paths"
	"github.com/tommorgenstern/gradus/internal/runtime"
)

// Controls a build.
type Options struct {
	Manifest  *manifest.Manifest // Deployment manifest to execute.
	Output    string             // Directory for the exported image.
	Root      string             // Source root, for resolving copy sources and the dependency manifest.
	Platforms []string           // Target platforms (e.g., ["linux/amd64"]). Defaults to host.
}

// Returned after a successful build.
type Result struct {
	Output string // Directory containing the exported image.
}

// Executes a deployment manifest against the container runtime.
//
// The dependency manifest is verified on the host before any container work
// starts: its absence aborts the build with no image produced. Each target
// platform then gets a build container from the base image, the manifest's
// steps are executed, the environment file is materialized if absent, the
// non-root account is created, and the result is exported with the runtime
// identity (entrypoint, PORT, user, exposed port) stamped on the image
// config. Any step failure aborts immediately.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	if len(opts.Platforms) == 0 {
		opts.Platforms = []string{"linux/" + goruntime.GOARCH}
	}

	if err := verifyDeps(opts.Root, opts.Manifest.Deps); err != nil {
		return nil, err
	}

	slog.Info("executing manifest",
		"app", opts.Manifest.App,
		"output", opts.Output,
		"steps", len(opts.Manifest.Steps),
		"platforms", opts.Platforms,
	)

	if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	return newPipeline(rt, opts).build(ctx)
}

// Verifies that the dependency manifest exists in the source root.
//
// The check runs before any container is created so a missing manifest
// fails fast without leaving a partial image behind.
func verifyDeps(root, deps string) error {
	path := deps
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, deps)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDepsManifest, path)
		}
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrDepsManifest, path)
	}

	return nil
}
