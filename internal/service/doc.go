// Package service contains the business logic of JobTrack.
//
// Services depend on small repository interfaces declared in this package and
// implemented in internal/repository, so each service can be tested with
// func-field mocks. All domain errors are sentinel vars in errors.go; handlers
// translate them to HTTP with errors.Is.
//
// The two pipelines (IngestionService, CalendarService) are single-flight:
// a second concurrent run is rejected with ErrSyncInProgress rather than
// queued.
package service
