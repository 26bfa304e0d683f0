package launch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tommorgenstern/gradus/internal/runtime"
)

// Controls a launch.
type Options struct {
	App     string // Application name, used for the image tag and container ID.
	Archive string // Path to the built OCI archive (image.tar).
	Name    string // Container ID override. Empty generates one from the app name.
}

// Starts and stops application containers from built images.
//
// The launcher owns no lifecycle beyond create and destroy: a container
// whose entrypoint fails simply exits non-zero, and any restart policy
// belongs to an external orchestrator.
type Launcher struct {
	rt *runtime.Runtime
}

// Creates a launcher on top of the given container runtime.
func New(rt *runtime.Runtime) *Launcher {
	return &Launcher{rt: rt}
}

// Imports the built archive and starts exactly one application container.
//
// The container runs the image's entrypoint with the image's environment;
// the PORT declaration and the non-root user stamped at build time apply
// unchanged. Returns the running container handle.
func (l *Launcher) Up(ctx context.Context, opts Options) (*runtime.Container, error) {
	tag := appTag(opts.App)

	if err := l.rt.ImportImage(ctx, opts.Archive, tag); err != nil {
		return nil, err
	}

	id := opts.Name
	if id == "" {
		id = containerID(opts.App)
	}

	return l.rt.StartApp(ctx, tag, id)
}

// Stops and removes an application container.
func (l *Launcher) Down(ctx context.Context, id string) error {
	ctr := l.rt.Container(id)
	if err := ctr.Stop(ctx); err != nil {
		return err
	}
	ctr.Destroy(ctx)
	return nil
}

// Reports the lifecycle state of an application container.
func (l *Launcher) Status(ctx context.Context, id string) (runtime.State, error) {
	return l.rt.Container(id).Status(ctx)
}

// Returns the image tag for an application.
func appTag(app string) string {
	return fmt.Sprintf("gradus/%s:latest", app)
}

// Returns a fresh container ID for an application.
//
// A random suffix keeps repeated launches of the same app distinct.
func containerID(app string) string {
	return fmt.Sprintf("%s-%s", app, uuid.NewString()[:8])
}
