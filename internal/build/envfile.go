package build

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/tommorgenstern/gradus/internal/manifest"
	"github.com/tommorgenstern/gradus/internal/runtime"
)

// Materializes the environment file inside the build container.
//
// The template is copied to the target path only when the target does not
// already exist; an existing target is left byte-for-byte untouched, so
// repeated builds over a pre-seeded filesystem are idempotent. A manifest
// without an envfile section is a no-op.
func materializeEnvFile(ctx context.Context, ctr *runtime.Container, ef manifest.EnvFile, root string) error {
	if ef.Template == "" {
		return nil
	}

	exists, err := ctr.PathExists(ctx, ef.Target)
	if err != nil {
		return err
	}
	if exists {
		slog.Debug("environment file present, leaving untouched", "target", ef.Target)
		return nil
	}

	slog.Debug("materializing environment file", "template", ef.Template, "target", ef.Target)

	if err := ctr.MkdirAll(ctx, filepath.Dir(ef.Target)); err != nil {
		return err
	}
	return executeHostCopy(ctx, ctr, ef.Template, ef.Target, root)
}
