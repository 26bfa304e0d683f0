package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tommorgenstern/gradus/internal/manifest"
	"github.com/tommorgenstern/gradus/internal/paths"
	"github.com/tommorgenstern/gradus/internal/runtime"
)

// Holds shared state for executing a manifest.
type pipeline struct {
	rt         *runtime.Runtime     // Container runtime for image and container operations.
	m          *manifest.Manifest   // Manifest being executed.
	output     string               // Output directory for the final build artifact.
	root       string               // Source root for resolving copy sources.
	platforms  []string             // Target platforms to build for.
	containers []*runtime.Container // Build containers across all platforms, destroyed after the build completes.
}

// Creates a new [pipeline] from the given options.
func newPipeline(rt *runtime.Runtime, opts Options) *pipeline {
	return &pipeline{
		rt:        rt,
		m:         opts.Manifest,
		output:    opts.Output,
		root:      opts.Root,
		platforms: opts.Platforms,
	}
}

// Builds the manifest end-to-end against the container runtime.
//
// Each target platform is built independently. All build containers are
// destroyed when the build completes, successful or not.
func (p *pipeline) build(ctx context.Context) (*Result, error) {
	defer p.destroyContainers(ctx)

	for _, platform := range p.platforms {
		if err := p.buildPlatform(ctx, platform); err != nil {
			return nil, fmt.Errorf("%w: platform %s: %w", ErrBuild, platform, err)
		}
	}

	return &Result{Output: p.output}, nil
}

// Builds the image for a single platform.
//
// Starts a build container from the base image, executes the manifest's
// steps, materializes the environment file if absent, creates the non-root
// account, then stops the container and exports the result with the runtime
// identity applied.
func (p *pipeline) buildPlatform(ctx context.Context, platform string) error {
	slog.Info("building platform", "platform", platform)

	output := p.platformOutput(platform)
	if err := os.MkdirAll(output, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %v", ErrFileSystemOperation, err)
	}

	ctr, err := p.rt.StartBuildContainer(ctx, p.m.Base, p.containerID(platform), platform)
	if err != nil {
		return err
	}
	p.containers = append(p.containers, ctr)

	if err := executeSteps(ctx, ctr, p.m.Steps, newStepState(p.m.Workdir), p.root); err != nil {
		return err
	}

	if err := materializeEnvFile(ctx, ctr, p.m.EnvFile, p.root); err != nil {
		return err
	}

	if err := createUser(ctx, ctr, p.m.User); err != nil {
		return err
	}

	if err := ctr.Stop(ctx); err != nil {
		return err
	}

	return ctr.Export(ctx, output, runtime.ImageConfig{
		Entrypoint:   p.m.Command,
		Env:          p.m.Environ(),
		User:         p.m.User.Name,
		WorkingDir:   p.m.Workdir,
		ExposedPorts: []string{p.m.ExposedPort()},
	})
}

// Destroys all build containers.
func (p *pipeline) destroyContainers(ctx context.Context) {
	for _, ctr := range p.containers {
		ctr.Destroy(ctx)
	}
}

// Returns a unique build container ID, scoped to this app and platform.
func (p *pipeline) containerID(platform string) string {
	return fmt.Sprintf("%s-%s-build", p.m.App, platformSlug(platform))
}

// Returns the output directory for a specific platform.
//
// When building for a single platform, the output directory is left as-is
// to preserve the {output}/image.tar convention. For multi-platform builds,
// each platform gets a subdirectory (e.g., {output}/linux-amd64).
func (p *pipeline) platformOutput(platform string) string {
	if len(p.platforms) == 1 {
		return p.output
	}
	return filepath.Join(p.output, platformSlug(platform))
}

// Converts a platform string to a filesystem-safe slug.
//
// Replaces slashes with dashes (e.g., "linux/amd64" becomes "linux-amd64").
func platformSlug(platform string) string {
	return strings.ReplaceAll(platform, "/", "-")
}
