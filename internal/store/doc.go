// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the services, allowing business rules to remain independent of specific
// database technologies or persistence details.
//
// Every store exposes WithTx so that a service can run several operations,
// possibly across stores, inside one RunInTransaction call.
package store
