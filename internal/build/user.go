package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tommorgenstern/gradus/internal/manifest"
	"github.com/tommorgenstern/gradus/internal/runtime"
)

// Creates the non-root account the exported image runs as.
//
// The account is created inside the build container so it exists in the
// exported filesystem; the export step then sets it as the image config
// User, completing the privilege drop before any application code runs.
// Creation is idempotent: an account that already exists (e.g., provided
// by the base image) is left as-is.
func createUser(ctx context.Context, ctr *runtime.Container, account manifest.Account) error {
	result, err := ctr.Exec(ctx, defaultShell, fmt.Sprintf("id -u %s", account.Name), nil, "")
	if err != nil {
		return err
	}
	if result.ExitCode == 0 {
		slog.Debug("account already exists", "name", account.Name)
		return nil
	}

	slog.Debug("creating account", "name", account.Name, "uid", account.UID)

	// useradd on glibc bases, adduser on busybox/alpine bases.
	cmd := fmt.Sprintf(
		"useradd --uid %d --create-home --shell /sbin/nologin %s 2>/dev/null || adduser -D -u %d %s",
		account.UID, account.Name, account.UID, account.Name,
	)

	result, err = ctr.Exec(ctx, defaultShell, cmd, nil, "")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: exit code %d: %s", ErrUserSetup, result.ExitCode, result.Stderr)
	}

	return nil
}
