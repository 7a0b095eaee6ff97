// Package domain defines the core business entities of the task service:
// the Task aggregate and the TaskStatus and DueDate value objects.
//
// Entities in this package are immutable once constructed. Mutation is
// expressed through functions that return a new instance, leaving the
// previous one intact.
package domain
