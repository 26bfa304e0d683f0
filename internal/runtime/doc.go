// Package runtime manages containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon and provides image import
// and container creation. OCI archives are imported, tagged with a
// deterministic content hash, unpacked for the target platform, and used
// to create containers with overlayfs snapshots.
//
// Two kinds of containers exist. Build containers run a placeholder task
// so that build steps can be attached as execs and files copied in and
// out as tar streams; their final filesystem state is committed and
// exported as a new OCI archive carrying the runtime identity (entrypoint,
// environment, non-root user, exposed port). Application containers run
// that exported identity verbatim: the task is the image's own entrypoint
// under the image's own user. When a container is no longer needed it
// should be destroyed to release its snapshot and task resources.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "gradus")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.StartBuildContainer(ctx, "base.tar", "build-1", "linux/amd64")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "/bin/sh", "echo hello", nil, "")
//	if err != nil {
//	    return err
//	}
//
//	err = ctr.Export(ctx, "output", runtime.ImageConfig{
//	    Entrypoint: []string{"gradus", "serve"},
//	    Env:        []string{"PORT=8000"},
//	    User:       "app",
//	})
package runtime
