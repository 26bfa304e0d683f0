// Package build orchestrates deployment manifest execution against the
// container runtime.
//
// A manifest describes one application image: a base image archive, a
// dependency manifest that must be present in the source tree, ordered
// build steps (shell commands and file copies), a conditional environment
// file copy, and a non-root account. The pipeline verifies the dependency
// manifest on the host, starts a build container from the base image,
// dispatches the steps, materializes the environment file only when absent,
// creates the account, and exports the result as an OCI image whose config
// carries the runtime identity: entrypoint, PORT environment, user, working
// directory, and exposed port. Multi-platform builds repeat the pipeline
// per platform, writing each result to a platform-specific output directory.
//
// Container operations are delegated to the runtime package. Step state
// (environment variables, working directory, shell) is accumulated across
// steps. Every failure aborts the build immediately; no retries, no partial
// image.
//
// Example usage:
//
//	result, err := build.Run(ctx, rt, build.Options{
//	    Manifest: m,
//	    Output:   "dist",
//	    Root:     ".",
//	})
//	if err != nil {
//	    return err
//	}
package build
