package memory

import (
	"context"

	"github.com/Behyna/saldo-service/internal/repository"
)

var _ repository.TxManager = TxManager{}

// TxManager runs fn directly. The memory stores have no multi-statement transactions.
type TxManager struct{}

func (TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
