// Package task runs generation work outside the lifetime of the request or
// connection that asked for it.
//
// A Handle is the cancellable reference to one in-flight task. The Registry
// maps chat IDs to their current Handle so a later stop request can find it,
// and the Scheduler owns the goroutines, the root context they derive from,
// and the panic boundary around each task.
package task
