package accesstokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bandroomhq/bandroom/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func token(tok, path string) *models.FileAccessToken {
	return &models.FileAccessToken{
		Token:       tok,
		UserID:      "u1",
		StoragePath: path,
		BandID:      "b1",
		ExpiresAt:   time.Date(2026, 8, 25, 12, 5, 0, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+file_access_tokens\s*\(token,\s*user_id,\s*storage_path,\s*band_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`

	tok := token("t1", "bands/b1/charts/s1/f1.pdf")
	mock.ExpectExec(q).
		WithArgs("t1", "u1", "bands/b1/charts/s1/f1.pdf", "b1", tok.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), tok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+file_access_tokens`).
		WillReturnError(errors.New("connection reset"))

	if err := repo.Create(context.Background(), token("t1", "bands/b1/charts/s1/f1.pdf")); err == nil {
		t.Fatal("want error, got nil")
	}
}

func TestCreateBatch_SingleStatement(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	t1 := token("t1", "bands/b1/charts/s1/f1.pdf")
	t2 := token("t2", "bands/b1/charts/s1/f2.pdf")

	q := `(?s)^INSERT\s+INTO\s+file_access_tokens\s*\(token,\s*user_id,\s*storage_path,\s*band_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\),\s*\(\$6,\s*\$7,\s*\$8,\s*\$9,\s*\$10\)$`

	mock.ExpectExec(q).
		WithArgs(
			"t1", "u1", "bands/b1/charts/s1/f1.pdf", "b1", t1.ExpiresAt,
			"t2", "u1", "bands/b1/charts/s1/f2.pdf", "b1", t2.ExpiresAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.CreateBatch(context.Background(), []*models.FileAccessToken{t1, t2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBatch_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// no expectations: an empty batch must not hit the database
	if err := repo.CreateBatch(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBatch_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+file_access_tokens`).
		WillReturnError(errors.New("deadlock detected"))

	err := repo.CreateBatch(context.Background(), []*models.FileAccessToken{
		token("t1", "bands/b1/charts/s1/f1.pdf"),
	})
	if err == nil {
		t.Fatal("want error, got nil")
	}
}
