package repository

import (
	"time"

	"github.com/easyrewardph/bayani/internal/domain/entity"
)

// AuditLogRepository define el puerto append-only del log de auditoría de
// escaneo. Ningún método actualiza ni borra entradas.
type AuditLogRepository interface {
	Append(entry *entity.AuditLogEntry) error
	// ListByTransfer devuelve el historial de una transferencia, opcionalmente
	// acotado por rango de tiempo, de más reciente a más antiguo.
	ListByTransfer(transferID string, from, to *time.Time, limit, offset int) ([]*entity.AuditLogEntry, error)
	// FindAppliedScan busca una entrada scan exitosa previa con el mismo
	// scan id de cliente (llave de idempotencia del replay). Devuelve nil si
	// el scan id nunca se aplicó.
	FindAppliedScan(transferID, scanID string) (*entity.AuditLogEntry, error)
}
