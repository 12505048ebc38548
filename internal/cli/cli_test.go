package cli

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithMock(t *testing.T, setup func(mock sqlmock.Sqlmock), args ...string) (string, error) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	setup(mock)
	mock.ExpectClose()

	opts := &RootOptions{openDB: func(string) (*sql.DB, error) { return db, nil }}
	cmd := newRootCommand(opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dsn", "postgres://test"}, args...))

	err = cmd.ExecuteContext(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
	return out.String(), err
}

func TestGamification_Off(t *testing.T) {
	out, err := runWithMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO system_settings")).
			WithArgs(false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT gamification_enabled")).
			WillReturnRows(sqlmock.NewRows([]string{"gamification_enabled"}).AddRow(false))
	}, "gamification", "off")

	require.NoError(t, err)
	assert.Equal(t, "gamification disabled\n", out)
}

func TestGamification_Status(t *testing.T) {
	out, err := runWithMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT gamification_enabled")).
			WillReturnRows(sqlmock.NewRows([]string{"gamification_enabled"}).AddRow(true))
	}, "gamification", "status")

	require.NoError(t, err)
	assert.Equal(t, "gamification enabled\n", out)
}

func TestGamification_RejectsUnknownArg(t *testing.T) {
	cmd := newRootCommand(&RootOptions{openDB: func(string) (*sql.DB, error) {
		return nil, errors.New("must not open")
	}})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dsn", "x", "gamification", "maybe"})

	assert.Error(t, cmd.Execute())
}

func TestRankingReset(t *testing.T) {
	out, err := runWithMock(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET points = 0 WHERE points > 0")).
			WillReturnResult(sqlmock.NewResult(0, 7))
	}, "ranking", "reset")

	require.NoError(t, err)
	assert.Equal(t, "ranking reset: 7 users\n", out)
}

func TestOpen_PropagatesError(t *testing.T) {
	opts := &RootOptions{openDB: func(string) (*sql.DB, error) { return nil, errors.New("refused") }}
	cmd := newRootCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dsn", "postgres://nowhere", "ranking", "reset"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}
