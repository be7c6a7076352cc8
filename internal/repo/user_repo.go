// Package repo implements the data access layer, backed by GORM. This file
// holds the fixed statements run by the database routes. Each function runs
// exactly one statement on the handle it is given and returns errors tagged
// by ClassifyDBError.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-fault-demo/internal/domain"
)

// MissingTable is the table the missing-table route queries. It must not
// exist in the target schema.
const MissingTable = "tabla_inexistente"

// DuplicateUserID is the primary key reused by the duplicate insert.
const DuplicateUserID = 1

const (
	sqlListUsers       = "SELECT * FROM users"
	sqlMissingTable    = "SELECT * FROM " + MissingTable
	sqlInsertDuplicate = "INSERT INTO users (id, nombre, email) VALUES (?, ?, ?)"
	sqlInsertNulls     = "INSERT INTO users (nombre, email) VALUES (NULL, NULL)"
)

// ListUsers returns every row of the users table.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var users []domain.User
	if err := db.WithContext(ctx).Raw(sqlListUsers).Scan(&users).Error; err != nil {
		return nil, wrapDB("list users", err)
	}
	return users, nil
}

// QueryMissingTable selects from MissingTable. It only succeeds if someone
// created the table, in which case the rows are returned as generic maps.
func QueryMissingTable(ctx context.Context, db *gorm.DB) ([]map[string]any, error) {
	var rows []map[string]any
	if err := db.WithContext(ctx).Raw(sqlMissingTable).Scan(&rows).Error; err != nil {
		return nil, wrapDB("select "+MissingTable, err)
	}
	return rows, nil
}

// InsertDuplicateUser inserts a row whose primary key is expected to exist.
func InsertDuplicateUser(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).
		Exec(sqlInsertDuplicate, DuplicateUserID, "Usuario Duplicado", "duplicado@example.com").
		Error
	return wrapDB("insert duplicate user", err)
}

// InsertNullUser inserts NULL into the NOT NULL columns of users.
func InsertNullUser(ctx context.Context, db *gorm.DB) error {
	return wrapDB("insert null user", db.WithContext(ctx).Exec(sqlInsertNulls).Error)
}
