package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

type stubTx struct {
	rollbackErr error
	rollbacks   int
}

func (s *stubTx) Commit(context.Context) error { return nil }

func (s *stubTx) Rollback(context.Context) error {
	s.rollbacks++
	return s.rollbackErr
}

func TestSafeRollback(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		rolledBack bool
	}{
		{"live transaction", nil, true},
		{"after commit", errors.New(domain.ErrMsgTxClosed), false},
		{"after commit, wrapped", fmt.Errorf("rollback: %w", errors.New(domain.ErrMsgTxClosed)), false},
		{"connection lost", errors.New("conn closed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &stubTx{rollbackErr: tt.err}
			assert.Equal(t, tt.rolledBack, SafeRollback(context.Background(), tx))
			assert.Equal(t, 1, tx.rollbacks)
		})
	}
}
