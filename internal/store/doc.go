// Package store persists the program tree and the goals file as JSON
// documents in a single data directory.
package store
