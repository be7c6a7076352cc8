// Package services holds one service per external dependency: the database,
// the country API and the local file directory. Services perform the single
// operation behind each route and hand tagged errors back unchanged; the
// translation into HTTP status codes happens in the handler layer.
package services

import "errors"

// ErrNotConfigured is returned when a service is called without the
// dependency it needs. It carries no domain tag and surfaces as an
// unclassified failure.
var ErrNotConfigured = errors.New("service dependency not configured")
