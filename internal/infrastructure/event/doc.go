// Package event dispatches domain events in process. Services publish
// after their transaction commits; handlers run synchronously on the
// publisher's goroutine and their failures are logged, never returned.
package event
