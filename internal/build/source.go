package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	git "github.com/go-git/go-git/v5"
)

// Clones a git repository to use as the build's source root.
//
// The clone is shallow; build sources don't need history. Returns the
// checkout directory and a cleanup function that removes it. The caller
// owns the cleanup and should run it once the build finishes.
func CloneSource(ctx context.Context, url string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "gradus-src-*")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrSource, err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	slog.Info("cloning source", "url", url, "dir", dir)

	if _, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	}); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("%w: %v", ErrSource, err)
	}

	return dir, cleanup, nil
}
