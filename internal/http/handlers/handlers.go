// Package handlers – service contracts and wiring.
//
// Handlers are transport-thin: each one calls a single service method and
// translates the outcome into JSON. Failure mapping lives in errors.go.
package handlers

import (
	"context"

	"github.com/tbourn/go-fault-demo/internal/domain"
)

// DBService runs the fixed database statements behind the /db routes.
//
// Implementations open one connection per call and release it before
// returning. They must honor ctx for cancellation.
type DBService interface {
	// ListUsers returns every row of the users table.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// FailConnection dials an unreachable host.
	FailConnection(ctx context.Context) error
	// QueryMissingTable selects from a table that does not exist.
	QueryMissingTable(ctx context.Context) ([]map[string]any, error)
	// InsertDuplicate inserts a row whose primary key already exists.
	InsertDuplicate(ctx context.Context) error
	// InsertNulls inserts NULL into NOT NULL columns.
	InsertNulls(ctx context.Context) error
}

// CountryService issues the fixed country API lookups.
type CountryService interface {
	Existing(ctx context.Context) (*domain.Country, error)
	Missing(ctx context.Context) (*domain.Country, error)
	Malformed(ctx context.Context) (*domain.Country, error)
}

// FileService reads a named file from the configured directory.
type FileService interface {
	Read(ctx context.Context, name string) (*domain.FileContent, error)
}

// Handlers groups the HTTP endpoints of the three dependency families.
type Handlers struct {
	dbSvc      DBService
	countrySvc CountryService
	fileSvc    FileService
}

// New constructs a Handlers instance bound to the given services.
func New(dbSvc DBService, countrySvc CountryService, fileSvc FileService) *Handlers {
	return &Handlers{dbSvc: dbSvc, countrySvc: countrySvc, fileSvc: fileSvc}
}
