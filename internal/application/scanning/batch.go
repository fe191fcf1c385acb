package scanning

import (
	"context"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

// BatchUseCase reproduce un lote ordenado de escaneos encolados (captura
// offline) a través del validador, aislando las fallas por evento. La
// idempotencia es estructural: un scan id ya aplicado devuelve el éxito
// registrado sin volver a incrementar, por lo que reintentar o abandonar un
// batch a medias nunca corrompe el progreso.
type BatchUseCase struct {
	scanUC       *ScanUseCase
	transferRepo repository.TransferRepository
	auditRepo    repository.AuditLogRepository
}

// NewBatchUseCase construye el procesador de batches.
func NewBatchUseCase(scanUC *ScanUseCase, transferRepo repository.TransferRepository, auditRepo repository.AuditLogRepository) *BatchUseCase {
	return &BatchUseCase{scanUC: scanUC, transferRepo: transferRepo, auditRepo: auditRepo}
}

// ProcessBatch aplica los eventos estrictamente en el orden recibido (sin
// reordenar ni paralelizar dentro del batch) y devuelve un resultado por
// evento, paralelo a la entrada. Las fallas de validación nunca abortan el
// batch; una falla genuina de sistema sí es fatal.
func (uc *BatchUseCase) ProcessBatch(ctx context.Context, transferID, deviceID string, scans []dto.BatchScanDTO) ([]dto.BatchResultDTO, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}

	results := make([]dto.BatchResultDTO, 0, len(scans))
	for _, scan := range scans {
		results = append(results, uc.processOne(ctx, transferID, deviceID, scan))
	}
	return results, nil
}

func (uc *BatchUseCase) processOne(ctx context.Context, transferID, deviceID string, scan dto.BatchScanDTO) dto.BatchResultDTO {
	// Idempotencia: si este scan id ya se aplicó con éxito, devolver el
	// resultado registrado sin tocar el plan.
	if scan.ScanID != "" {
		prior, err := uc.auditRepo.FindAppliedScan(transferID, scan.ScanID)
		if err != nil {
			return dto.BatchResultDTO{ScanID: scan.ScanID, Status: dto.BatchStatusError, Message: err.Error()}
		}
		if prior != nil {
			return dto.BatchResultDTO{ScanID: scan.ScanID, Status: dto.BatchStatusSuccess, Message: prior.Detail}
		}
	}

	result, err := uc.scanUC.ScanProduct(ctx, ScanInputDTO{
		TransferID: transferID,
		Barcode:    scan.Barcode,
		LocationID: scan.LocationID,
		LotID:      scan.LotID,
		ScanID:     scan.ScanID,
		DeviceID:   deviceID,
	})
	if err != nil {
		// Recuperable o no, el error queda en el resultado del evento; el
		// validador ya lo dejó en el log de auditoría.
		return dto.BatchResultDTO{ScanID: scan.ScanID, Status: dto.BatchStatusError, Message: err.Error()}
	}
	return dto.BatchResultDTO{ScanID: scan.ScanID, Status: dto.BatchStatusSuccess, Message: result.Message}
}
