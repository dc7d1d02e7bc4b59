// Package dispatch runs the bridge's command cycle.
//
// A Dispatcher owns the processing guard and the channel. Each Tick:
//
//   - returns Busy if a cycle is already in flight (no queueing)
//   - returns Idle when there is no command document
//   - otherwise decodes the command, validates its parameters, runs the
//     handler, writes the response and only then deletes the command file
//
// Write-then-delete means a crash between the two leaves the command behind,
// so it is redelivered on the next tick. Handlers are not idempotent beyond
// their natural semantics; loading the same audio twice loads it twice.
//
// A failed response write is logged and the command is still consumed. A
// panic in a handler becomes an "internal error" response, and the guard is
// cleared on every exit.
package dispatch
