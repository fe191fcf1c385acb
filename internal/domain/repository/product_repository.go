package repository

import "github.com/easyrewardph/bayani/internal/domain/entity"

// ProductRepository define el puerto de consulta de productos (DIP).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// FindByBarcode resuelve tanto el código propio del producto como sus
	// códigos de empaque. Devuelve nil si no resuelve.
	FindByBarcode(barcode string) (*entity.Product, error)
}
