// Package api provides the HTTP handlers for the task service.
package api
