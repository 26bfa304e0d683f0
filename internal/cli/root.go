package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/tommorgenstern/gradus/internal"
	"github.com/tommorgenstern/gradus/internal/runtime"
)

// Represents the root command for the gradus CLI.
var RootCmd struct {
	Quiet      bool   `short:"q" help:"Suppress informational output."`
	Verbose    bool   `short:"v" help:"Enable verbose output."`
	Debug      bool   `short:"d" help:"Enable debug output."`
	Containerd string `help:"Override the containerd socket address." placeholder:"PATH"`
	Namespace  string `help:"Override the containerd namespace." placeholder:"NAME"`

	Serve   ServeCmd   `cmd:"" help:"Run the study dashboard server."`
	Build   BuildCmd   `cmd:"" help:"Build an application image from a deploy manifest."`
	Up      UpCmd      `cmd:"" help:"Import a built image and start the application."`
	Down    DownCmd    `cmd:"" help:"Stop and remove an application container."`
	Status  StatusCmd  `cmd:"" help:"Show the state of an application container."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Study progress dashboard and its deployment tooling.\n\nServes the dashboard, builds application images from a deploy manifest, and runs them as containers."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
//
// Flags override build-time defaults set via linker flags. Verbose mode adds
// source locations to every record.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	})
	slog.SetDefault(slog.New(handler))
}

// Connects to containerd, honoring the root command overrides.
func newRuntime() (*runtime.Runtime, error) {
	return runtime.New(RootCmd.Containerd, RootCmd.Namespace)
}
