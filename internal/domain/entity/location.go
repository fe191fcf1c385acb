package entity

import "time"

// Clases de uso de una ubicación. Solo las internas participan en la
// validación de sitio de escaneo.
const (
	LocationUsageInternal = "internal"
	LocationUsageSupplier = "supplier"
	LocationUsageCustomer = "customer"
	LocationUsageTransit  = "transit"
	LocationUsageView     = "view"
)

// Location es un nodo jerárquico de almacenamiento (bodega, pasillo, estante).
// CompleteName es el nombre jerárquico completo ("WH/Stock/Shelf 1"); es el
// criterio de desempate del orden FEFO.
type Location struct {
	ID           string
	Name         string
	CompleteName string
	ParentID     string
	Usage        string // internal, supplier, customer, transit, view
	Barcode      string
	CreatedAt    time.Time
}

// IsInternal indica si la ubicación es un sitio de escaneo válido.
func (l *Location) IsInternal() bool {
	return l.Usage == LocationUsageInternal
}
