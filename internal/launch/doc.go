// Package launch starts application containers from built images.
//
// A launch imports the OCI archive produced by the build pipeline, tags it
// under the application name, and starts a single container running the
// image's entrypoint. Everything that defines the runtime contract (the
// bind address and port in the command line, the PORT environment variable,
// the non-root user) was stamped onto the image config at build time; the
// launcher adds nothing and overrides nothing.
//
// There is no supervision: a container whose entrypoint fails to start
// exits non-zero and stays down. Restart policy is the job of whatever
// orchestrator sits above.
package launch
