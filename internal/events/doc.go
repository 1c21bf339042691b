// Package events provides the in-process domain event bus.
//
// Services emit events such as order.placed after their transaction commits.
// Handlers registered on the emitter turn them into background work without
// the services knowing which handlers exist.
package events
