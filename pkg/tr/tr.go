package tr

import (
	"context"

	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// WithTx кладет транзакцию pgx в контекст.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
