package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL
// (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, name, product_id, expiration_date, created_at`

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	return r.one(`SELECT `+lotColumns+` FROM lots WHERE id = $1`, id)
}

// FindByName resuelve el nombre/código de barras de un lote. Devuelve nil si no existe.
func (r *LotRepo) FindByName(name string) (*entity.Lot, error) {
	return r.one(`SELECT `+lotColumns+` FROM lots WHERE name = $1 LIMIT 1`, name)
}

// ListByProduct devuelve los lotes de un producto, los que vencen primero al inicio.
func (r *LotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots WHERE product_id = $1
		ORDER BY expiration_date NULLS LAST, name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.Name, &l.ProductID, &l.ExpirationDate, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, &l)
	}
	return lots, rows.Err()
}

func (r *LotRepo) one(query string, arg any) (*entity.Lot, error) {
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Name, &l.ProductID, &l.ExpirationDate, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}
