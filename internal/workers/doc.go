// Package workers implements a prefork process model: one supervisor
// binds the listening socket and hands it to a fixed number of worker
// processes that accept connections concurrently.
//
// The kernel balances accepts across workers sharing the socket, so no
// user-space routing is involved. The supervisor fails the whole group
// as soon as one worker dies; process managers above it handle
// restarts.
package workers
