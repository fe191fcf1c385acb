package entity

import "time"

// Tipos de evento del log de auditoría de escaneo.
const (
	AuditEventScan           = "scan"
	AuditEventValidationFail = "validation_fail"
	AuditEventOverride       = "override"
	AuditEventError          = "error"
)

// Códigos de razón (enum fijo, compartido con los reportes de operación).
const (
	ReasonShortStock      = "short_stock"
	ReasonWrongProduct    = "wrong_product"
	ReasonDamaged         = "damaged"
	ReasonExpiry          = "expiry"
	ReasonManagerOverride = "manager_override"
	ReasonOther           = "other"
)

// AuditLogEntry es un registro append-only de un intento de escaneo o de una
// decisión del compliance gate. Nunca se actualiza ni se borra. No reconstruye
// estado autoritativo: las cantidades escaneadas del plan mandan.
type AuditLogEntry struct {
	ID         string
	TransferID string
	ScanID     string // vacío para eventos que no vienen de un escaneo con id de cliente
	LineID     string // línea afectada en escaneos exitosos
	EventType  string // scan, validation_fail, override, error
	Barcode    string
	ReasonCode string // vacío en eventos exitosos
	Detail     string // texto libre para el operador
	DeviceID   string
	Timestamp  time.Time
}
