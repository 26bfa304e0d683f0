// Package config loads the dashboard server's runtime configuration.
//
// Configuration is process-wide state initialized exactly once at startup:
// an optional .env file is read, environment variables are applied over
// defaults, and the result is returned as an explicit [Config] value that
// callers pass along. There is no ambient global and no re-reading of the
// environment after startup.
package config
