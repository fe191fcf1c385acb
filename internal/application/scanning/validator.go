package scanning

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
	domscan "github.com/easyrewardph/bayani/internal/domain/scanning"
)

// ScanInputDTO entrada de un escaneo individual. ScanID viene del cliente y
// puede estar vacío en escaneos en línea; DeviceID sale del token.
type ScanInputDTO struct {
	TransferID string
	Barcode    string
	LocationID string
	LotID      string
	ScanID     string
	DeviceID   string
}

// ScanUseCase es la máquina de estados del escaneo estricto: recibe un evento
// y el progreso actual del plan, y o avanza el progreso o rechaza con una
// razón tipada. Los pasos de validación solo leen; únicamente el apply final
// (incremento condicional de una línea) requiere exclusividad, acotada a esa
// línea para que líneas independientes avancen en paralelo.
type ScanUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	lineRepo     repository.PlannedLineRepository
	productRepo  repository.ProductRepository
	lotRepo      repository.LotRepository
	locationRepo repository.LocationRepository
	auditRepo    repository.AuditLogRepository
	publisher    EventPublisher
	sink         AttemptSink
	policy       Policy
}

// NewScanUseCase construye el validador. publisher y sink pueden ser nil.
func NewScanUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	lineRepo repository.PlannedLineRepository,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	locationRepo repository.LocationRepository,
	auditRepo repository.AuditLogRepository,
	publisher EventPublisher,
	sink AttemptSink,
	policy Policy,
) *ScanUseCase {
	return &ScanUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		lineRepo:     lineRepo,
		productRepo:  productRepo,
		lotRepo:      lotRepo,
		locationRepo: locationRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		sink:         sink,
		policy:       policy,
	}
}

// scanOutcomeEvent payload publicado al exchange de eventos de escaneo.
type scanOutcomeEvent struct {
	TransferID string `json:"transfer_id"`
	ScanID     string `json:"scan_id,omitempty"`
	Barcode    string `json:"barcode"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	DeviceID   string `json:"device_id,omitempty"`
}

// ScanProduct valida y aplica un escaneo contra el plan reservado, en orden
// estricto: resolución de barcode, ubicación, producto-en-plan, autorización
// de lote, selección de capacidad y apply atómico. Todo resultado (éxito o
// falla) queda en el log de auditoría antes de retornar.
func (uc *ScanUseCase) ScanProduct(ctx context.Context, input ScanInputDTO) (*dto.ScanResultDTO, error) {
	if input.TransferID == "" || input.Barcode == "" {
		return nil, domain.ErrInvalidInput
	}

	transfer, err := uc.transferRepo.GetByID(input.TransferID)
	if err != nil {
		return nil, uc.systemFail(ctx, input, fmt.Errorf("consultar transferencia: %w", err))
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	if !transfer.IsOpen() {
		return nil, uc.reject(ctx, input, domain.ErrTransferNotOpen, "estado actual: "+transfer.State)
	}

	// Paso 1: resolución del barcode — producto primero, lote después.
	product, err := uc.productRepo.FindByBarcode(input.Barcode)
	if err != nil {
		return nil, uc.systemFail(ctx, input, fmt.Errorf("resolver barcode: %w", err))
	}
	var lot *entity.Lot
	if product == nil {
		lot, err = uc.lotRepo.FindByName(input.Barcode)
		if err != nil {
			return nil, uc.systemFail(ctx, input, fmt.Errorf("resolver lote: %w", err))
		}
		if lot == nil {
			return nil, uc.reject(ctx, input, domain.ErrBarcodeUnresolved, input.Barcode)
		}
		product, err = uc.productRepo.GetByID(lot.ProductID)
		if err != nil {
			return nil, uc.systemFail(ctx, input, fmt.Errorf("producto del lote: %w", err))
		}
		if product == nil {
			return nil, uc.reject(ctx, input, domain.ErrBarcodeUnresolved, "lote sin producto: "+lot.Name)
		}
	}
	if lot == nil && input.LotID != "" {
		lot, err = uc.lotRepo.GetByID(input.LotID)
		if err != nil {
			return nil, uc.systemFail(ctx, input, fmt.Errorf("lote declarado: %w", err))
		}
		if lot == nil || lot.ProductID != product.ID {
			return nil, uc.reject(ctx, input, domain.ErrLotUnauthorized, "lote declarado: "+input.LotID)
		}
	}

	lines, err := uc.lineRepo.ListByTransfer(input.TransferID)
	if err != nil {
		return nil, uc.systemFail(ctx, input, fmt.Errorf("líneas del plan: %w", err))
	}

	// Paso 2: la ubicación declarada debe ser origen de alguna línea.
	if input.LocationID != "" {
		sourceIDs := distinctSourceLocations(lines)
		found := false
		for _, id := range sourceIDs {
			if id == input.LocationID {
				found = true
				break
			}
		}
		if !found {
			return nil, uc.reject(ctx, input, domain.ErrLocationMismatch,
				"ubicaciones origen válidas: "+strings.Join(uc.locationNames(sourceIDs), ", "))
		}
	}

	// Paso 3: el producto resuelto debe estar en el plan.
	candidates := make([]*entity.PlannedLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == product.ID {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		return nil, uc.reject(ctx, input, domain.ErrProductNotPlanned, product.Name)
	}

	// Paso 4: autorización de lote. Los lotes nunca son sustituibles.
	if lot != nil {
		narrowed := candidates[:0:0]
		for _, l := range candidates {
			if l.LotID == lot.ID {
				narrowed = append(narrowed, l)
			}
		}
		if len(narrowed) == 0 {
			return nil, uc.reject(ctx, input, domain.ErrLotUnauthorized, "lote: "+lot.Name)
		}
		candidates = narrowed
	} else if uc.policy.EnforceLotTracking && product.RequiresLot() {
		return nil, uc.reject(ctx, input, domain.ErrLotRequired, product.Name)
	}

	// Estrechar por ubicación declarada antes de seleccionar capacidad.
	if input.LocationID != "" {
		narrowed := candidates[:0:0]
		for _, l := range candidates {
			if l.SourceLocationID == input.LocationID {
				narrowed = append(narrowed, l)
			}
		}
		if len(narrowed) == 0 {
			return nil, uc.reject(ctx, input, domain.ErrProductNotPlanned,
				product.Name+" no está reservado en la ubicación declarada")
		}
		candidates = narrowed
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Sequence < candidates[j].Sequence
	})

	// ScannedQty solo crece: una línea ya completa en esta lectura no
	// recupera capacidad, así que el rechazo por cantidad puede decidirse
	// sin abrir la transacción.
	open := candidates[:0:0]
	for _, l := range candidates {
		if l.HasCapacity() {
			open = append(open, l)
		}
	}
	if len(open) == 0 {
		return nil, uc.reject(ctx, input, domain.ErrQuantityExceeded, product.Name)
	}
	candidates = open

	// Pasos 5 y 6: primera línea en orden de reserva con capacidad, con
	// incremento condicional atómico + entrada de auditoría en la misma tx.
	var applied *entity.PlannedLine
	err = uc.txRunner.Run(ctx, func(lineRepo repository.PlannedLineRepository, auditRepo repository.AuditLogRepository) error {
		for _, cand := range candidates {
			ok, err := lineRepo.IncrementScanned(cand.ID)
			if err != nil {
				return fmt.Errorf("incrementar línea %s: %w", cand.ID, err)
			}
			if !ok {
				continue // línea completa, probar la siguiente en orden de reserva
			}
			fresh, err := lineRepo.GetByID(cand.ID)
			if err != nil {
				return fmt.Errorf("releer línea %s: %w", cand.ID, err)
			}
			applied = fresh
			return auditRepo.Append(&entity.AuditLogEntry{
				ID:         uuid.New().String(),
				TransferID: input.TransferID,
				ScanID:     input.ScanID,
				LineID:     cand.ID,
				EventType:  entity.AuditEventScan,
				Barcode:    input.Barcode,
				Detail:     "Scanned: " + product.Name,
				DeviceID:   input.DeviceID,
				Timestamp:  time.Now(),
			})
		}
		return domain.ErrQuantityExceeded
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuantityExceeded) {
			return nil, uc.reject(ctx, input, domain.ErrQuantityExceeded, product.Name)
		}
		return nil, uc.systemFail(ctx, input, err)
	}

	result := &dto.ScanResultDTO{
		LineID:      applied.ID,
		ProductName: product.Name,
		Remaining:   applied.Remaining(),
		Message:     "Scanned: " + product.Name,
	}
	if lot != nil {
		result.LotName = lot.Name
	}
	uc.emit(ctx, input, "scan.applied", "SUCCESS", result.Message)
	return result, nil
}

// reject registra una falla de validación (auditoría + sink + evento) y
// devuelve el error tipado con el detalle para el operador.
func (uc *ScanUseCase) reject(ctx context.Context, input ScanInputDTO, cause error, detail string) error {
	msg := cause.Error()
	if detail != "" {
		msg = msg + "; " + detail
	}
	_ = uc.auditRepo.Append(&entity.AuditLogEntry{
		ID:         uuid.New().String(),
		TransferID: input.TransferID,
		ScanID:     input.ScanID,
		EventType:  entity.AuditEventValidationFail,
		Barcode:    input.Barcode,
		ReasonCode: domscan.ReasonForError(cause),
		Detail:     msg,
		DeviceID:   input.DeviceID,
		Timestamp:  time.Now(),
	})
	uc.emit(ctx, input, "scan.rejected", "FAILURE", msg)
	if detail != "" {
		return fmt.Errorf("%w; %s", cause, detail)
	}
	return cause
}

// systemFail registra una falla de sistema (event_type=error) y la devuelve.
// A diferencia de las fallas de validación, esta clase es fatal para el caller.
func (uc *ScanUseCase) systemFail(ctx context.Context, input ScanInputDTO, err error) error {
	_ = uc.auditRepo.Append(&entity.AuditLogEntry{
		ID:         uuid.New().String(),
		TransferID: input.TransferID,
		ScanID:     input.ScanID,
		EventType:  entity.AuditEventError,
		Barcode:    input.Barcode,
		ReasonCode: entity.ReasonOther,
		Detail:     err.Error(),
		DeviceID:   input.DeviceID,
		Timestamp:  time.Now(),
	})
	uc.emit(ctx, input, "scan.error", "FAILURE", err.Error())
	return err
}

// emit escribe el sink de archivo y publica al broker; ambos best-effort.
func (uc *ScanUseCase) emit(ctx context.Context, input ScanInputDTO, key, status, message string) {
	if uc.sink != nil {
		uc.sink.Record(input.Barcode, status, message)
	}
	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, key, scanOutcomeEvent{
			TransferID: input.TransferID,
			ScanID:     input.ScanID,
			Barcode:    input.Barcode,
			Status:     status,
			Message:    message,
			DeviceID:   input.DeviceID,
		})
	}
}

// locationNames resuelve nombres legibles para el mensaje de LocationMismatch.
func (uc *ScanUseCase) locationNames(ids []string) []string {
	locs, err := uc.locationRepo.ListByIDs(ids)
	if err != nil || len(locs) == 0 {
		return ids
	}
	names := make([]string, 0, len(locs))
	for _, loc := range locs {
		name := loc.CompleteName
		if name == "" {
			name = loc.Name
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func distinctSourceLocations(lines []*entity.PlannedLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.SourceLocationID]; ok {
			continue
		}
		seen[l.SourceLocationID] = struct{}{}
		ids = append(ids, l.SourceLocationID)
	}
	return ids
}
