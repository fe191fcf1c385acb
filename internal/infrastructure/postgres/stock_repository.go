package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/easyrewardph/bayani/internal/domain/repository"
	"github.com/easyrewardph/bayani/internal/domain/scanning"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de solo lectura sobre las existencias actuales.
// Este núcleo consulta stock pero nunca lo muta.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// AvailableQty devuelve la cantidad disponible de un producto en una
// ubicación; cero si no hay registro.
func (r *StockRepo) AvailableQty(productID, locationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_quants
		WHERE product_id = $1 AND location_id = $2`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("available qty: %w", err)
	}
	return qty, nil
}

// ListCandidatesByProduct devuelve existencias del producto en ubicaciones
// internas con su lote y vencimiento. Sin orden garantizado: el consumidor
// aplica SortFEFO.
func (r *StockRepo) ListCandidatesByProduct(productID string) ([]scanning.StockCandidate, error) {
	query := `
		SELECT q.product_id, q.location_id, loc.complete_name,
		       COALESCE(q.lot_id, ''), COALESCE(l.name, ''), l.expiration_date,
		       q.quantity
		FROM stock_quants q
		JOIN locations loc ON loc.id = q.location_id
		LEFT JOIN lots l ON l.id = q.lot_id
		WHERE q.product_id = $1 AND loc.usage = 'internal'`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock candidates: %w", err)
	}
	defer rows.Close()

	var candidates []scanning.StockCandidate
	for rows.Next() {
		var c scanning.StockCandidate
		if err := rows.Scan(
			&c.ProductID, &c.LocationID, &c.LocationName,
			&c.LotID, &c.LotName, &c.ExpirationDate,
			&c.AvailableQty,
		); err != nil {
			return nil, fmt.Errorf("scan stock candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
