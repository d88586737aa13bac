package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockLocalState(t *testing.T) (*LocalStateSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewLocalStateSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

type recentUTC struct{}

func (recentUTC) Match(v driver.Value) bool {
	tm, ok := v.(time.Time)
	if !ok || tm.Location() != time.UTC {
		return false
	}
	now := time.Now().UTC()
	return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
}

func TestLocalStateSQLite_Get(t *testing.T) {
	tests := []struct {
		name        string
		mockExpect  func(sqlmock.Sqlmock)
		want        string
		wantErr     error
		errContains string
	}{
		{
			name: "found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectLocalStateSQL)).
					WithArgs("optiwatt_theme").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))
			},
			want: "dark",
		},
		{
			name: "missing key",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectLocalStateSQL)).
					WithArgs("optiwatt_theme").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "query error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectLocalStateSQL)).
					WithArgs("optiwatt_theme").
					WillReturnError(errors.New("disk I/O error"))
			},
			errContains: "select local state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockLocalState(t)
			defer cleanup()
			tt.mockExpect(mock)

			got, err := repo.Get(context.Background(), "optiwatt_theme")

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.errContains != "":
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("expected error containing %q, got %v", tt.errContains, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Fatalf("got %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestLocalStateSQLite_Put_UpsertsWithUTCTimestamp(t *testing.T) {
	repo, mock, cleanup := newMockLocalState(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO local_state")).
		WithArgs("optiwatt_user", `{"id":"u-1"}`, recentUTC{}).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Put(context.Background(), "optiwatt_user", `{"id":"u-1"}`); err != nil {
		t.Fatalf("Put: %v", err)
	}
}

func TestLocalStateSQLite_Put_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockLocalState(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO local_state")).
		WillReturnError(errors.New("readonly database"))

	err := repo.Put(context.Background(), "k", "v")
	if err == nil || !strings.Contains(err.Error(), "upsert local state") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestLocalStateSQLite_Delete(t *testing.T) {
	repo, mock, cleanup := newMockLocalState(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteLocalStateSQL)).
		WithArgs("optiwatt_user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "optiwatt_user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestLocalStateSQLite_Delete_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockLocalState(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteLocalStateSQL)).
		WithArgs("optiwatt_user").
		WillReturnError(errors.New("locked"))

	if err := repo.Delete(context.Background(), "optiwatt_user"); err == nil {
		t.Fatalf("expected error")
	}
}
