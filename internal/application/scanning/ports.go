package scanning

import (
	"context"

	"github.com/easyrewardph/bayani/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el incremento de línea y su
// entrada de auditoría se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.PlannedLineRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// EventPublisher publica resultados de escaneo hacia un broker (tableros en
// vivo del almacén). Las implementaciones deben ser nil-safe: sin broker
// configurado, publicar es un no-op.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// AttemptSink recibe cada intento de escaneo para el log plano diario del
// operador. Una falla del sink nunca falla el escaneo.
type AttemptSink interface {
	Record(barcode, status, message string)
}
