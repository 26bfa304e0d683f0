// Package web serves the study dashboard over HTTP.
//
// It renders a single server-side page for humans and a small JSON API
// under /api for scripts. All state lives in the store; handlers load,
// mutate and save per request, so any number of worker processes can
// serve the same data directory.
package web
