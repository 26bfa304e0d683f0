// Package manifest defines the declarative deployment descriptor.
//
// A manifest describes how to turn a source tree into a runnable image:
// the base image archive, the dependency manifest that must be present,
// ordered build steps, the conditional environment file copy, the non-root
// account, the declared port, and the launch command.
//
// Manifests are YAML documents with strict field checking. Validation
// separates fatal problems (missing required fields, malformed steps) from
// warnings (a launch command whose hardcoded port disagrees with the
// declared port); warnings are surfaced to the operator, never corrected
// silently.
//
// Example usage:
//
//	m, err := manifest.Load("deploy.yml")
//	if err != nil {
//	    return err
//	}
//	warnings, err := m.Validate()
//	if err != nil {
//	    return err
//	}
package manifest
