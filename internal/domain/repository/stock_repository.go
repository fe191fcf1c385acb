package repository

import (
	"github.com/shopspring/decimal"

	"github.com/easyrewardph/bayani/internal/domain/scanning"
)

// StockRepository define el puerto de consulta de existencias actuales.
// Solo lectura desde este núcleo: el stock lo mutan otros subsistemas.
type StockRepository interface {
	// AvailableQty devuelve la cantidad disponible de un producto en una
	// ubicación (cero si no hay registro).
	AvailableQty(productID, locationID string) (decimal.Decimal, error)
	// ListCandidatesByProduct devuelve las existencias del producto en
	// ubicaciones internas, con lote y vencimiento, sin orden garantizado;
	// el consumidor aplica el orden FEFO.
	ListCandidatesByProduct(productID string) ([]scanning.StockCandidate, error)
}
