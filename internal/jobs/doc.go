// Package jobs contains background workers that run alongside the HTTP
// server. Workers follow a Start/Stop lifecycle and are wired in cmd/server.
package jobs
