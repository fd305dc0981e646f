// Package handler contains the HTTP layer of JobTrack.
//
// Handlers decode and validate request bodies, call into internal/service,
// and render responses. Success bodies are wrapped in a data envelope with
// optional links; failures are RFC 9457 problem documents produced by
// MapServiceError so every handler maps service errors identically.
package handler
