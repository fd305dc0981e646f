// Package repository implements data access for jobs, events, emails, and
// the user profile on top of the database abstraction.
//
// Repositories own SurrealQL and the shape of stored records; they return
// domain models and database sentinel errors, never raw query results.
// Record ids are assigned here (table-prefixed UUIDs) so creation is a
// single round trip.
package repository
