// Package model defines the domain types for JobTrack: jobs, their scheduled
// events, captured inbox emails, the user profile, and the RFC 9457 problem
// details used for API error responses.
package model
