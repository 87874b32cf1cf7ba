package settings

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgres_Set_UsesNumberedPlaceholders(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)INSERT\s+INTO\s+settings\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\(key\)`
	mock.ExpectExec(q).WithArgs("k", []byte("v")).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
}

func TestPostgres_Get_NoRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT\s+value\s+FROM\s+settings\s+WHERE\s+key\s*=\s*\$1$`).
		WithArgs("k").WillReturnError(sql.ErrNoRows)

	v, err := repo.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPostgres_Get_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+settings`).WithArgs("k").WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "k")
	require.ErrorContains(t, err, "failed to get setting[k]: db down")
}

func TestPostgres_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+settings\s+WHERE\s+key\s*=\s*\$1$`).
		WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "k"))
}
