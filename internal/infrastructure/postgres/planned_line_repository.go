package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

var _ repository.PlannedLineRepository = (*PlannedLineRepo)(nil)

// PlannedLineRepo implementación del puerto PlannedLineRepository sobre
// PostgreSQL (usable con pool o tx).
type PlannedLineRepo struct {
	q Querier
}

// NewPlannedLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlannedLineRepository(q Querier) *PlannedLineRepo {
	return &PlannedLineRepo{q: q}
}

const plannedLineColumns = `id, transfer_id, product_id, COALESCE(lot_id, ''), source_location_id,
	dest_location_id, reserved_qty, scanned_qty, sequence, created_at, updated_at`

// ListByTransfer devuelve las líneas de una transferencia en orden de reserva.
func (r *PlannedLineRepo) ListByTransfer(transferID string) ([]*entity.PlannedLine, error) {
	query := `
		SELECT ` + plannedLineColumns + `
		FROM planned_lines WHERE transfer_id = $1
		ORDER BY sequence, id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list planned lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.PlannedLine
	for rows.Next() {
		line, err := scanPlannedLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetByID obtiene una línea por ID. Devuelve nil si no existe.
func (r *PlannedLineRepo) GetByID(id string) (*entity.PlannedLine, error) {
	query := `
		SELECT ` + plannedLineColumns + `
		FROM planned_lines WHERE id = $1`
	line, err := scanPlannedLine(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return line, nil
}

// IncrementScanned suma una unidad a scanned_qty solo si queda capacidad.
// La condición y el incremento son un único UPDATE: dos dispositivos
// compitiendo por la última unidad reservada no pueden ganar ambos.
func (r *PlannedLineRepo) IncrementScanned(lineID string) (bool, error) {
	query := `
		UPDATE planned_lines
		SET scanned_qty = scanned_qty + 1, updated_at = now()
		WHERE id = $1 AND scanned_qty < reserved_qty`
	tag, err := r.q.Exec(context.Background(), query, lineID)
	if err != nil {
		return false, fmt.Errorf("increment scanned: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanPlannedLine(row pgx.Row) (*entity.PlannedLine, error) {
	var l entity.PlannedLine
	err := row.Scan(
		&l.ID, &l.TransferID, &l.ProductID, &l.LotID, &l.SourceLocationID,
		&l.DestLocationID, &l.ReservedQty, &l.ScannedQty, &l.Sequence,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan planned line: %w", err)
	}
	return &l, nil
}
