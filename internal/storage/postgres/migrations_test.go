package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestApplyRunsAllMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS movies").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_movies_created_at").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_movies_release_date").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO movies").WillReturnResult(sqlmock.NewResult(0, 50))

	if err := Apply(context.Background(), sqlx.NewDb(db, "sqlmock")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestApplyReportsFailingStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS movies").
		WillReturnError(context.DeadlineExceeded)

	err = Apply(context.Background(), sqlx.NewDb(db, "sqlmock"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "migration 1") {
		t.Errorf("error does not name the failing migration: %v", err)
	}
}

func TestSeedMigrationIsGuarded(t *testing.T) {
	seed := migrations[len(migrations)-1]
	if !strings.Contains(seed, "WHERE NOT EXISTS") {
		t.Error("seed statement must be guarded so it only runs on an empty table")
	}
	if !strings.Contains(seed, "generate_series(1, 50)") {
		t.Error("seed statement must insert 50 rows")
	}
}
