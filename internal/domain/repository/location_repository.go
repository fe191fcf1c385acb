package repository

import "github.com/easyrewardph/bayani/internal/domain/entity"

// LocationRepository define el puerto de consulta de ubicaciones (DIP).
type LocationRepository interface {
	GetByID(id string) (*entity.Location, error)
	// ListByIDs resuelve varias ubicaciones de una vez (para armar snapshots
	// sin N+1). El resultado omite ids inexistentes.
	ListByIDs(ids []string) ([]*entity.Location, error)
}
