package repository

import "github.com/easyrewardph/bayani/internal/domain/entity"

// LotRepository define el puerto de consulta de lotes (DIP).
type LotRepository interface {
	GetByID(id string) (*entity.Lot, error)
	// FindByName resuelve el nombre/código de barras de un lote. Devuelve nil
	// si no existe.
	FindByName(name string) (*entity.Lot, error)
	ListByProduct(productID string) ([]*entity.Lot, error)
}
