package scanning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

// Tipos de violación reportados por el compliance gate.
const (
	ViolationQuantityInvariant    = "quantity_invariant_broken"
	ViolationLocationInconsistent = "location_inconsistent"
	ViolationUnplannedLine        = "unplanned_line"
)

// ComplianceUseCase es la compuerta final antes de marcar una transferencia
// como done: reverifica cada línea contra los invariantes estrictos. Recolecta
// todas las violaciones (no fail-fast) para que el operador vea la lista
// completa en una sola pasada. Solo lee, salvo el registro del veredicto y la
// transición de estado cuando pasa.
type ComplianceUseCase struct {
	transferRepo repository.TransferRepository
	lineRepo     repository.PlannedLineRepository
	auditRepo    repository.AuditLogRepository
	publisher    EventPublisher
	policy       Policy
}

// NewComplianceUseCase construye el gate. publisher puede ser nil.
func NewComplianceUseCase(
	transferRepo repository.TransferRepository,
	lineRepo repository.PlannedLineRepository,
	auditRepo repository.AuditLogRepository,
	publisher EventPublisher,
	policy Policy,
) *ComplianceUseCase {
	return &ComplianceUseCase{
		transferRepo: transferRepo,
		lineRepo:     lineRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		policy:       policy,
	}
}

// FinalizeTransfer corre el gate y, si no hay violaciones, autoriza la
// transición a done en el plan. Con violaciones devuelve la lista completa y
// la transferencia queda intacta.
func (uc *ComplianceUseCase) FinalizeTransfer(ctx context.Context, transferID, deviceID string) (*dto.FinalizeResponse, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	if transfer.State == entity.TransferStateDone {
		return nil, fmt.Errorf("%w; ya está cerrada", domain.ErrTransferNotOpen)
	}

	lines, err := uc.lineRepo.ListByTransfer(transferID)
	if err != nil {
		return nil, err
	}

	var violations []dto.ComplianceViolationDTO
	for _, line := range lines {
		switch {
		case line.ReservedQty.IsZero() && line.ScannedQty.GreaterThan(line.ReservedQty):
			// Adición ad-hoc: nada reservado pero algo escaneado.
			violations = append(violations, dto.ComplianceViolationDTO{
				LineID:  line.ID,
				Kind:    ViolationUnplannedLine,
				Message: fmt.Sprintf("línea %s: adición no planificada (reservado 0, escaneado %s)", line.ID, line.ScannedQty.String()),
			})
		case line.ScannedQty.GreaterThan(line.ReservedQty):
			// El validador es el único mutador de scanned_qty; si esto se
			// dispara, algo escribió el plan por fuera del motor.
			violations = append(violations, dto.ComplianceViolationDTO{
				LineID: line.ID,
				Kind:   ViolationQuantityInvariant,
				Message: fmt.Sprintf("línea %s: escaneado %s excede lo reservado %s",
					line.ID, line.ScannedQty.String(), line.ReservedQty.String()),
			})
		}
		if uc.policy.SingleDestination && line.DestLocationID != transfer.DestLocationID {
			violations = append(violations, dto.ComplianceViolationDTO{
				LineID:  line.ID,
				Kind:    ViolationLocationInconsistent,
				Message: fmt.Sprintf("línea %s: destino distinto al destino único de la transferencia", line.ID),
			})
		}
	}

	if len(violations) > 0 {
		uc.recordVerdict(ctx, transferID, deviceID, false, summarize(violations))
		return &dto.FinalizeResponse{Status: "blocked", Violations: violations}, nil
	}

	if err := uc.transferRepo.MarkDone(transferID, time.Now()); err != nil {
		return nil, fmt.Errorf("cerrar transferencia: %w", err)
	}
	uc.recordVerdict(ctx, transferID, deviceID, true, "transferencia validada y cerrada")
	return &dto.FinalizeResponse{Status: "done"}, nil
}

// recordVerdict deja el veredicto del gate en el log de auditoría y lo publica.
func (uc *ComplianceUseCase) recordVerdict(ctx context.Context, transferID, deviceID string, passed bool, detail string) {
	entry := &entity.AuditLogEntry{
		ID:         uuid.New().String(),
		TransferID: transferID,
		EventType:  entity.AuditEventScan,
		Detail:     detail,
		DeviceID:   deviceID,
		Timestamp:  time.Now(),
	}
	key := "compliance.passed"
	if !passed {
		entry.EventType = entity.AuditEventValidationFail
		entry.ReasonCode = entity.ReasonOther
		key = "compliance.blocked"
	}
	_ = uc.auditRepo.Append(entry)
	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, key, map[string]string{
			"transfer_id": transferID,
			"detail":      detail,
			"device_id":   deviceID,
		})
	}
}

func summarize(violations []dto.ComplianceViolationDTO) string {
	msg := fmt.Sprintf("%d violación(es) de cumplimiento:", len(violations))
	for _, v := range violations {
		msg += " [" + v.Kind + "] " + v.Message + ";"
	}
	return msg
}
