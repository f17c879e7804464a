package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

// stubTx overrides Rollback only; the embedded interface covers the rest.
type stubTx struct {
	pgx.Tx
	rollbackErr error
}

func (t *stubTx) Rollback(ctx context.Context) error { return t.rollbackErr }

func TestRollbackAfterCommitIsANoOp(t *testing.T) {
	r := &BaseRepository{}

	// pgx reports ErrTxClosed when the deferred rollback runs after a
	// successful commit.
	err := r.Rollback(context.Background(), &stubTx{rollbackErr: pgx.ErrTxClosed})
	assert.NoError(t, err)
}

func TestRollbackSurfacesRealFailures(t *testing.T) {
	r := &BaseRepository{}

	err := r.Rollback(context.Background(), &stubTx{rollbackErr: errors.New("connection reset")})
	assert.Error(t, err)
}
