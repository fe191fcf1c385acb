package entity

import "time"

// Lot representa un lote de producción. Pertenece a exactamente un producto;
// su nombre funciona como código de barras del lote. ExpirationDate alimenta
// el orden FEFO y puede ser nil para lotes sin vencimiento.
type Lot struct {
	ID             string
	Name           string
	ProductID      string
	ExpirationDate *time.Time
	CreatedAt      time.Time
}
