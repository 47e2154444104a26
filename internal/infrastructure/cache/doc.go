// Package cache holds the idempotency stores used by event handlers: an
// in-process map for single-instance deployments and a Redis store for
// deployments that share state across processes.
package cache
