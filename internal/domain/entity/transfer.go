package entity

import "time"

// Estados del ciclo de vida de una transferencia.
const (
	TransferStateDraft     = "draft"
	TransferStateConfirmed = "confirmed"
	TransferStateDone      = "done" // terminal, solo vía compliance gate
)

// Transfer representa un movimiento planificado de mercancía entre ubicaciones
// (recepción, despacho o movimiento interno). Es la fuente de verdad del plan:
// sus líneas solo mutan por progreso de escaneo y por el compliance gate.
type Transfer struct {
	ID               string
	Reference        string // folio operativo, ej. "WH/IN/00042"
	SourceLocationID string
	DestLocationID   string
	State            string // draft, confirmed, done
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DoneAt           *time.Time
}

// IsOpen indica si la transferencia admite escaneos (solo confirmada).
func (t *Transfer) IsOpen() bool {
	return t.State == TransferStateConfirmed
}
