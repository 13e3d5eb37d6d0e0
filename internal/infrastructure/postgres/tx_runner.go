package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/flowboard-api/internal/application/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

var _ agenda.SlotTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSlots inicia una transacción, ejecuta fn con el almacén de horarios atado a la tx y hace
// Commit; ante cualquier error hace Rollback y el almacén conserva su contenido anterior.
func (r *TxRunner) RunSlots(ctx context.Context, fn func(slots repository.SlotRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSlotRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
