package build

import "errors"

var (
	ErrBuild               = errors.New("build failed")
	ErrDepsManifest        = errors.New("dependency manifest not found")
	ErrFileSystemOperation = errors.New("file system operation failed")
	ErrCopy                = errors.New("copy failed")
	ErrCommandFailed       = errors.New("command failed")
	ErrUserSetup           = errors.New("user setup failed")
	ErrSource              = errors.New("source fetch failed")
)
