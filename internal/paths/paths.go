package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	appName = "gradus"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for dashboard data files (program, goals).
//
//	Linux:   $XDG_DATA_HOME/gradus or ~/.local/share/gradus
//	macOS:   ~/Library/Application Support/gradus
func Data() string {
	return filepath.Join(xdg.DataHome, appName)
}

// Path to the directory for built image archives.
//
//	Linux:   $XDG_CACHE_HOME/gradus/images or ~/.cache/gradus/images
//	macOS:   ~/Library/Caches/gradus/images
func Images() string {
	return filepath.Join(xdg.CacheHome, appName, "images")
}

// Path to the directory for runtime files (PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/gradus or /run/user/<uid>/gradus
//	macOS:   ~/Library/Caches/gradus/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, appName)
	}
	return filepath.Join(xdg.CacheHome, appName, "run")
}

// Default path to the PID file written by the serve master process.
//
//	Linux:   $XDG_RUNTIME_DIR/gradus/gradus.pid
//	macOS:   ~/Library/Caches/gradus/run/gradus.pid
func PIDFile() string {
	return filepath.Join(Runtime(), appName+".pid")
}
