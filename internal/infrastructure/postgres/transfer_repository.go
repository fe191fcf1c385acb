package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL
// (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// GetByID obtiene una transferencia por ID. Devuelve nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT id, reference, source_location_id, dest_location_id, state, created_at, updated_at, done_at
		FROM transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Reference, &t.SourceLocationID, &t.DestLocationID, &t.State,
		&t.CreatedAt, &t.UpdatedAt, &t.DoneAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// MarkDone transiciona la transferencia a done. Solo el compliance gate llama
// aquí; la condición de estado evita cerrar dos veces.
func (r *TransferRepo) MarkDone(id string, at time.Time) error {
	query := `
		UPDATE transfers
		SET state = 'done', done_at = $2, updated_at = now()
		WHERE id = $1 AND state <> 'done'`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("mark transfer done: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotOpen
	}
	return nil
}
