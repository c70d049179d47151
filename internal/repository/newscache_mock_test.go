package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// TestGetNews_QueryError tests a database failure on read
func TestGetNews_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	c := &NewsCache{db: db}
	dbErr := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT payload, fetched_at FROM news_cache").
		WithArgs("e1").
		WillReturnError(dbErr)

	_, _, err = c.GetNews(context.Background(), "e1")
	if !errors.Is(err, dbErr) {
		t.Errorf("expected database error, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("database errors must not be reported as ErrNotFound")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestGetNews_ScanError tests a row with an unexpected column type
func TestGetNews_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	c := &NewsCache{db: db}
	rows := sqlmock.NewRows([]string{"payload", "fetched_at"}).AddRow("[]", "not-a-number")
	mock.ExpectQuery("SELECT payload, fetched_at FROM news_cache").WillReturnRows(rows)

	if _, _, err := c.GetNews(context.Background(), "e1"); err == nil {
		t.Error("expected scan error, got nil")
	}
}

// TestPutNews_ExecError tests a database failure on write
func TestPutNews_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	c := &NewsCache{db: db}
	mock.ExpectExec("INSERT INTO news_cache").
		WithArgs("e1", "[]", int64(42)).
		WillReturnError(errors.New("database is locked"))

	if err := c.PutNews(context.Background(), "e1", []byte("[]"), time.UnixMilli(42)); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestNewsCacheMigrate_Error tests schema creation failure
func TestNewsCacheMigrate_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	c := &NewsCache{db: db}
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS news_cache").WillReturnError(errors.New("read-only database"))

	if err := c.migrate(); err == nil {
		t.Error("expected migrate error, got nil")
	}
}
