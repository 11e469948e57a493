// Package channel tracks every open network channel of the process.
//
// A [Group] is the shared registry handed to the bootstrap by the host. Bound
// listeners and accepted connections register themselves on open and
// unregister on close, so that shutdown can close whatever is still open in
// one sweep and the host can introspect live traffic.
package channel
