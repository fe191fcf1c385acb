package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedLine es una unidad de reserva dentro de una transferencia: producto
// (y lote si aplica) reservado desde una ubicación origen hacia un destino.
// Los campos de reserva son inmutables tras confirmar; ScannedQty solo crece
// y únicamente a través del validador de escaneo.
// Invariante: 0 <= ScannedQty <= ReservedQty en modo estricto.
type PlannedLine struct {
	ID               string
	TransferID       string
	ProductID        string
	LotID            string // vacío si el producto no rastrea lote
	SourceLocationID string
	DestLocationID   string
	ReservedQty      decimal.Decimal
	ScannedQty       decimal.Decimal
	Sequence         int // orden de reserva, define prioridad de consumo
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Remaining devuelve la cantidad pendiente de escanear (ReservedQty - ScannedQty).
func (l *PlannedLine) Remaining() decimal.Decimal {
	return l.ReservedQty.Sub(l.ScannedQty)
}

// HasCapacity indica si la línea aún acepta una unidad más.
func (l *PlannedLine) HasCapacity() bool {
	return l.ScannedQty.LessThan(l.ReservedQty)
}
