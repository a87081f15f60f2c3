// Package postgres stores users and blogs in PostgreSQL. It is the relational
// alternative to package mongodb and implements the same repositories. The
// schema lives in the top-level migrations directory.
package postgres
