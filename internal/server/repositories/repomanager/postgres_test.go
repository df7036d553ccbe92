package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestVendedRepositoriesNotNil(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	if m.Members(db) == nil {
		t.Error("Members repo is nil")
	}
	if m.RefreshTokens(db) == nil {
		t.Error("RefreshTokens repo is nil")
	}
	if m.Songs(db) == nil {
		t.Error("Songs repo is nil")
	}
	if m.Charts(db) == nil {
		t.Error("Charts repo is nil")
	}
	if m.AccessTokens(db) == nil {
		t.Error("AccessTokens repo is nil")
	}
	if m.PracticeLogs(db) == nil {
		t.Error("PracticeLogs repo is nil")
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("migration failed")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestRunMigrations_OK(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	called := false
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("goose.UpContext was not invoked")
	}
}
