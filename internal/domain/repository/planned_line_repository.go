package repository

import "github.com/easyrewardph/bayani/internal/domain/entity"

// PlannedLineRepository define el puerto sobre las líneas reservadas de una
// transferencia. Reemplaza las búsquedas dinámicas por predicado del sistema
// anterior con consultas indexadas explícitas.
type PlannedLineRepository interface {
	// ListByTransfer devuelve las líneas en orden de reserva (Sequence).
	ListByTransfer(transferID string) ([]*entity.PlannedLine, error)
	GetByID(id string) (*entity.PlannedLine, error)
	// IncrementScanned suma una unidad a scanned_qty de forma atómica,
	// solo si scanned_qty < reserved_qty. Devuelve false si la línea ya
	// estaba completa (la condición y el incremento son una sola operación;
	// dos dispositivos compitiendo por la última unidad no pueden ganar ambos).
	IncrementScanned(lineID string) (bool, error)
}
