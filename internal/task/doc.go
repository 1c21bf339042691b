// Package task runs background work for the server: a bounded in-memory
// queue drained by a worker pool, the event handler that turns shop events
// into buyer notifications, and the cron-driven notification retention job.
//
// Tasks are not persisted. A task still queued when the process stops is
// lost; notifications are informational and the orders and deliveries they
// describe are committed before the event is emitted.
package task
