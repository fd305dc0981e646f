// Package middleware provides HTTP middleware for JobTrack.
//
// The chain applied in cmd/server is
//
//	RequestID -> Logger -> Recovery -> CORS -> Compress
//
// RequestID assigns (or preserves) an X-Request-ID and stores it in the
// request context; Logger emits one structured log line per request;
// Recovery turns panics into a 500 problem document; CORS handles the
// browser preflight dance for the configured origins; Compress gzips
// responses when the client accepts it.
package middleware
