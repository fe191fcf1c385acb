package scanning

import (
	"context"
	"time"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

// HistoryUseCase consulta el historial de auditoría de una transferencia para
// el operador. Lectura pura; el historial nunca reconstruye estado
// autoritativo.
type HistoryUseCase struct {
	transferRepo repository.TransferRepository
	auditRepo    repository.AuditLogRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(transferRepo repository.TransferRepository, auditRepo repository.AuditLogRepository) *HistoryUseCase {
	return &HistoryUseCase{transferRepo: transferRepo, auditRepo: auditRepo}
}

// ListByTransfer devuelve el historial, opcionalmente acotado por rango.
func (uc *HistoryUseCase) ListByTransfer(_ context.Context, transferID string, from, to *time.Time, limit, offset int) ([]dto.AuditEntryDTO, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	entries, err := uc.auditRepo.ListByTransfer(transferID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryDTO{
			ID:         e.ID,
			ScanID:     e.ScanID,
			LineID:     e.LineID,
			EventType:  e.EventType,
			Barcode:    e.Barcode,
			ReasonCode: e.ReasonCode,
			Detail:     e.Detail,
			DeviceID:   e.DeviceID,
			Timestamp:  e.Timestamp,
		})
	}
	return out, nil
}
