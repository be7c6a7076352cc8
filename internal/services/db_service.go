// Package services – DBService
//
// DBService runs the fixed statements behind the database routes. Every
// method opens its own connection, runs one statement and releases the
// connection before returning, on success and failure alike.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-fault-demo/internal/domain"
)

// Connector opens and releases short-lived database connections.
type Connector interface {
	// Open dials the configured database.
	Open(ctx context.Context) (*gorm.DB, error)
	// OpenHost dials host with every other setting unchanged.
	OpenHost(ctx context.Context, host string) (*gorm.DB, error)
	// Close releases a connection obtained from Open or OpenHost.
	Close(db *gorm.DB) error
}

// UserRepo defines the statements DBService runs against the users schema.
type UserRepo interface {
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
	QueryMissingTable(ctx context.Context, db *gorm.DB) ([]map[string]any, error)
	InsertDuplicateUser(ctx context.Context, db *gorm.DB) error
	InsertNullUser(ctx context.Context, db *gorm.DB) error
}

// DBService exposes one method per database route.
type DBService struct {
	Conn Connector
	Repo UserRepo
	// BadHost is the unreachable host used by FailConnection.
	BadHost string
}

// NewDBService constructs a DBService.
func NewDBService(conn Connector, r UserRepo, badHost string) *DBService {
	return &DBService{Conn: conn, Repo: r, BadHost: badHost}
}

// withConn opens a connection, runs fn and always releases the connection.
func (s *DBService) withConn(ctx context.Context, fn func(db *gorm.DB) error) error {
	if s.Conn == nil || s.Repo == nil {
		return ErrNotConfigured
	}
	db, err := s.Conn.Open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Conn.Close(db) }()
	return fn(db)
}

// ListUsers returns every row of the users table.
func (s *DBService) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.withConn(ctx, func(db *gorm.DB) error {
		var err error
		users, err = s.Repo.ListUsers(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// FailConnection dials BadHost. It returns nil only if the connection
// unexpectedly succeeds, in which case the connection is closed at once.
func (s *DBService) FailConnection(ctx context.Context) error {
	if s.Conn == nil {
		return ErrNotConfigured
	}
	db, err := s.Conn.OpenHost(ctx, s.BadHost)
	if err != nil {
		return err
	}
	return s.Conn.Close(db)
}

// QueryMissingTable selects from a table that should not exist.
func (s *DBService) QueryMissingTable(ctx context.Context) ([]map[string]any, error) {
	var rows []map[string]any
	err := s.withConn(ctx, func(db *gorm.DB) error {
		var err error
		rows, err = s.Repo.QueryMissingTable(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}

// InsertDuplicate inserts a user whose primary key already exists.
func (s *DBService) InsertDuplicate(ctx context.Context) error {
	return s.withConn(ctx, func(db *gorm.DB) error {
		return s.Repo.InsertDuplicateUser(ctx, db)
	})
}

// InsertNulls inserts NULL into the NOT NULL columns of users.
func (s *DBService) InsertNulls(ctx context.Context) error {
	return s.withConn(ctx, func(db *gorm.DB) error {
		return s.Repo.InsertNullUser(ctx, db)
	})
}
