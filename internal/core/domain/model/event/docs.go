// Package event defines the domain events raised by order lifecycle transitions.
//
// Aggregates do not call a sink directly. They append events to an embedded
// Recorder; the unit of work collects PendingEvents after a successful commit
// and hands them to the configured publisher. A failed publish never undoes
// the committed state change.
package event
