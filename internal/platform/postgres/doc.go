// Package postgres provides the PostgreSQL implementation of the
// interfaces defined in the store package.
package postgres
