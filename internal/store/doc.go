// Package store defines the persistence interfaces the service layer
// depends on, along with the sentinel errors store implementations return.
// Concrete implementations live under internal/platform.
package store
