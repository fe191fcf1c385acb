package entity

import "time"

// Modos de trazabilidad de un producto.
const (
	TrackingNone   = "none"
	TrackingLot    = "lot"
	TrackingSerial = "serial"
)

// Product representa un producto identificable por código de barras.
// PackagingBarcodes cubre códigos de empaque secundarios (caja, display)
// que resuelven al mismo producto.
type Product struct {
	ID                string
	SKU               string
	Name              string
	Barcode           string
	PackagingBarcodes []string
	Tracking          string // none, lot, serial
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RequiresLot indica si un escaneo de este producto debe venir acompañado de lote.
func (p *Product) RequiresLot() bool {
	return p.Tracking == TrackingLot || p.Tracking == TrackingSerial
}
