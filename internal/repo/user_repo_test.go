package repo

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-fault-demo/internal/domain"
)

func newUsersDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()
	role := "admin"
	users := []domain.User{
		{ID: 1, Nombre: "Ana", Email: "ana@example.com", Role: &role},
		{ID: 2, Nombre: "Luis", Email: "luis@example.com"},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	db := newUsersDB(t)

	got, err := ListUsers(ctx, db)
	if err != nil {
		t.Fatalf("ListUsers (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no users, got %d", len(got))
	}

	seedUsers(t, db)
	got, err = ListUsers(ctx, db)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
	if got[0].Nombre != "Ana" || got[0].Role == nil || *got[0].Role != "admin" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].Role != nil || got[1].Password != nil {
		t.Fatalf("NULL columns should scan as nil, got %+v", got[1])
	}
}

func TestListUsers_NoTableIsQueryFailure(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	_, err = ListUsers(context.Background(), db)
	if domain.KindOf(err) != domain.KindDBQuery {
		t.Fatalf("expected KindDBQuery, got %v (%v)", domain.KindOf(err), err)
	}
}

func TestQueryMissingTable(t *testing.T) {
	db := newUsersDB(t)

	rows, err := QueryMissingTable(context.Background(), db)
	if err == nil {
		t.Fatalf("expected error, got rows=%v", rows)
	}
	if domain.KindOf(err) != domain.KindDBQuery || domain.ReasonOf(err) != domain.ReasonMissingTable {
		t.Fatalf("unexpected tag: kind=%v reason=%q err=%v", domain.KindOf(err), domain.ReasonOf(err), err)
	}
	if !strings.Contains(err.Error(), MissingTable) {
		t.Fatalf("driver text should name the table, got %q", err.Error())
	}
}

func TestQueryMissingTable_SucceedsWhenCreated(t *testing.T) {
	db := newUsersDB(t)
	if err := db.Exec("CREATE TABLE " + MissingTable + " (id INTEGER PRIMARY KEY)").Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Exec("INSERT INTO " + MissingTable + " (id) VALUES (7)").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := QueryMissingTable(context.Background(), db)
	if err != nil {
		t.Fatalf("QueryMissingTable: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %v", rows)
	}
}

func TestInsertDuplicateUser(t *testing.T) {
	ctx := context.Background()
	db := newUsersDB(t)

	// Empty table: the insert goes through.
	if err := InsertDuplicateUser(ctx, db); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := InsertDuplicateUser(ctx, db)
	if domain.KindOf(err) != domain.KindDBConstraint || domain.ReasonOf(err) != domain.ReasonDuplicateKey {
		t.Fatalf("expected duplicate-key violation, got kind=%v reason=%q err=%v", domain.KindOf(err), domain.ReasonOf(err), err)
	}
}

func TestInsertNullUser(t *testing.T) {
	db := newUsersDB(t)

	err := InsertNullUser(context.Background(), db)
	if domain.KindOf(err) != domain.KindDBConstraint || domain.ReasonOf(err) != domain.ReasonNotNull {
		t.Fatalf("expected not-null violation, got kind=%v reason=%q err=%v", domain.KindOf(err), domain.ReasonOf(err), err)
	}

	var n int64
	if err := db.Model(&domain.User{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rejected insert must not leave rows, got %d", n)
	}
}

func TestStatements_CanceledContext(t *testing.T) {
	db := newUsersDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ListUsers(ctx, db)
	if err == nil {
		t.Fatalf("expected error on canceled context")
	}
	if k := domain.KindOf(err); k != domain.KindUnclassified {
		t.Fatalf("canceled work must stay unclassified, got %v", k)
	}
}
