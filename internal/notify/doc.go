// Package notify implements the due-date reminder pipeline: a Scheduler
// that records a reminder when a task becomes due soon, and a Worker that
// periodically pops recorded reminders, re-checks that they are still
// relevant against the current clock, and hands them to a Deliverer.
//
// Delivery is best effort and at most once per queued record: stale records
// are dropped silently and delivery failures are logged, never retried.
// The two halves of the pipeline share no in-process state; they meet only
// at the Queue, whose pop must be atomic.
package notify
