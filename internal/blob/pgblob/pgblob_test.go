package pgblob

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"commentbox/internal/errs"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestStore_Get_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	s := NewStore(db)

	mock.ExpectQuery(`SELECT value FROM blobs WHERE key=\$1`).
		WithArgs("commentbox:snapshot").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"user":{}}`)))

	got, err := s.Get(context.Background(), "commentbox:snapshot")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"user":{}}`), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	s := NewStore(db)

	mock.ExpectQuery(`SELECT value FROM blobs WHERE key=\$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, errs.ErrBlobNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set_Upsert(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	s := NewStore(db)

	mock.ExpectExec(`INSERT INTO blobs \(key, value, updated_at\) VALUES \(\$1,\$2,now\(\)\)`).
		WithArgs("commentbox:snapshot", []byte(`{}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Set(context.Background(), "commentbox:snapshot", []byte(`{}`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set_WriteFailurePropagates(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	s := NewStore(db)

	boom := errors.New("connection reset")
	mock.ExpectExec(`INSERT INTO blobs`).
		WithArgs("k", []byte(`{}`)).
		WillReturnError(boom)

	err := s.Set(context.Background(), "k", []byte(`{}`))
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
