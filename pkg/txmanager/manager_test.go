package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	opts      []*sql.TxOptions
	txs       []*fakeTx
	begin     error
	commitErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.begin != nil {
		return nil, b.begin
	}
	tx := &fakeTx{commitErr: b.commitErr}
	b.opts = append(b.opts, opts)
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDo_BeginError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{begin: errors.New("no conn")})

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	require.ErrorIs(t, err, ErrTransaction)
}

func TestDoSerializable_CommitErrors(t *testing.T) {
	tests := []struct {
		name          string
		commitErr     error
		wantErr       error
		serialization bool
	}{
		{"serialization failure", &pq.Error{Code: "40001", Message: "could not serialize access"}, ErrSerializationFailure, true},
		{"other postgres error", &pq.Error{Code: "57P01", Message: "terminating connection"}, ErrTransaction, false},
		{"driver error", errors.New("bad connection"), ErrTransaction, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTransactionManager(&fakeBeginner{commitErr: tt.commitErr})

			err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.serialization, IsSerializationFailure(err))
		})
	}
}

func TestIsSerializationFailure_WrappedDriverError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "40001"})

	assert.True(t, IsSerializationFailure(err))
	assert.False(t, IsSerializationFailure(errors.New("40001")))
	assert.False(t, IsSerializationFailure(nil))
}
