// Package repo implements the data access layer, backed by GORM. This file
// is the only place that knows driver error shapes: it maps MySQL, Postgres
// and SQLite failures onto the domain error taxonomy.
package repo

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/tbourn/go-fault-demo/internal/domain"
)

// MySQL server error numbers we classify.
const (
	mysqlDupEntry         = 1062
	mysqlBadNull          = 1048
	mysqlNoDefault        = 1364
	mysqlNoSuchTable      = 1146
	mysqlAccessDenied     = 1045
	mysqlDBAccessDenied   = 1044
	mysqlUnknownDatabase  = 1049
	mysqlTooManyConns     = 1040
	mysqlHostNotPrivilege = 1130
)

// Postgres SQLSTATE codes we classify.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgUndefinedTable   = "42P01"
	pgInvalidCatalog   = "3D000"
)

// ClassifyDBError maps an error returned by a database operation to a Kind
// and Reason. Errors already tagged keep their tag; context cancellation is
// left unclassified; any other driver error is a query failure.
func ClassifyDBError(err error) (domain.Kind, domain.Reason) {
	if err == nil {
		return domain.KindUnclassified, domain.ReasonNone
	}

	var tagged *domain.Error
	if errors.As(err, &tagged) {
		return tagged.Kind, tagged.Reason
	}
	if errors.Is(err, context.Canceled) {
		return domain.KindUnclassified, domain.ReasonNone
	}

	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDupEntry:
			return domain.KindDBConstraint, domain.ReasonDuplicateKey
		case mysqlBadNull, mysqlNoDefault:
			return domain.KindDBConstraint, domain.ReasonNotNull
		case mysqlNoSuchTable:
			return domain.KindDBQuery, domain.ReasonMissingTable
		case mysqlAccessDenied, mysqlDBAccessDenied, mysqlUnknownDatabase, mysqlTooManyConns, mysqlHostNotPrivilege:
			return domain.KindDBConnection, domain.ReasonNone
		}
		return domain.KindDBQuery, domain.ReasonNone
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch {
		case pe.Code == pgUniqueViolation:
			return domain.KindDBConstraint, domain.ReasonDuplicateKey
		case pe.Code == pgNotNullViolation:
			return domain.KindDBConstraint, domain.ReasonNotNull
		case pe.Code == pgUndefinedTable:
			return domain.KindDBQuery, domain.ReasonMissingTable
		case pe.Code == pgInvalidCatalog, strings.HasPrefix(pe.Code, "08"), strings.HasPrefix(pe.Code, "28"):
			return domain.KindDBConnection, domain.ReasonNone
		}
		return domain.KindDBQuery, domain.ReasonNone
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.KindDBConstraint, domain.ReasonDuplicateKey
	}
	if isConnErr(err) {
		return domain.KindDBConnection, domain.ReasonNone
	}

	// SQLite (and anything wrapped beyond recognition) only gives us text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "duplicate entry"):
		return domain.KindDBConstraint, domain.ReasonDuplicateKey
	case strings.Contains(msg, "not null constraint"),
		strings.Contains(msg, "violates not-null"),
		strings.Contains(msg, "cannot be null"):
		return domain.KindDBConstraint, domain.ReasonNotNull
	case strings.Contains(msg, "no such table"),
		strings.Contains(msg, "doesn't exist") && strings.Contains(msg, "table"),
		strings.Contains(msg, "does not exist") && strings.Contains(msg, "relation"):
		return domain.KindDBQuery, domain.ReasonMissingTable
	case strings.Contains(msg, "unable to open database file"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"):
		return domain.KindDBConnection, domain.ReasonNone
	}
	return domain.KindDBQuery, domain.ReasonNone
}

// isConnErr reports transport-level failures: broken driver connections,
// failed dials and DNS errors.
func isConnErr(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldrv.ErrInvalidConn) {
		return true
	}
	var ce *pgconn.ConnectError
	if errors.As(err, &ce) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// wrapDB tags err for operation op using ClassifyDBError. Unclassified errors
// are returned untouched.
func wrapDB(op string, err error) error {
	if err == nil {
		return nil
	}
	kind, reason := ClassifyDBError(err)
	if kind == domain.KindUnclassified {
		return err
	}
	return domain.E(kind, reason, op, err)
}
