package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/application/scanning"
	"github.com/easyrewardph/bayani/internal/domain"
)

// ScanHandler maneja las peticiones HTTP del flujo de escaneo de transferencias (protegido).
type ScanHandler struct {
	snapshot   *scanning.SnapshotUseCase
	scan       *scanning.ScanUseCase
	batch      *scanning.BatchUseCase
	compliance *scanning.ComplianceUseCase
	expiry     *scanning.ExpiryUseCase
	history    *scanning.HistoryUseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(
	snapshot *scanning.SnapshotUseCase,
	scan *scanning.ScanUseCase,
	batch *scanning.BatchUseCase,
	compliance *scanning.ComplianceUseCase,
	expiry *scanning.ExpiryUseCase,
	history *scanning.HistoryUseCase,
) *ScanHandler {
	return &ScanHandler{
		snapshot:   snapshot,
		scan:       scan,
		batch:      batch,
		compliance: compliance,
		expiry:     expiry,
		history:    history,
	}
}

// GetSnapshot godoc
// @Summary      Snapshot de validación de una transferencia
// @Description  Devuelve las líneas planificadas con cantidades reservadas/escaneadas,
//
//	stock disponible por ubicación origen e índices de búsqueda por código
//	de barras (productos, empaques, ubicaciones) y por nombre de lote.
//
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/snapshot [get]
func (h *ScanHandler) GetSnapshot(c *fiber.Ctx) error {
	transferID := c.Params("id")
	if transferID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de transferencia requerido"})
	}
	snap, err := h.snapshot.GetSnapshot(c.Context(), transferID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transferencia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(snap)
}

// ScanProduct godoc
// @Summary      Validar y aplicar un escaneo individual
// @Description  Valida el código de barras contra el plan de la transferencia y, si
//
//	pasa todas las reglas, incrementa la cantidad escaneada de la línea
//	de forma atómica. Todo intento queda registrado en auditoría.
//
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la transferencia"
// @Param        body  body  dto.ScanRequest  true  "barcode, location_id, lot_id (opcional), scan_id (opcional)"
// @Success      200   {object}  dto.ScanResultDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/scan [post]
func (h *ScanHandler) ScanProduct(c *fiber.Ctx) error {
	transferID := c.Params("id")
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if transferID == "" || in.Barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "transferencia y barcode requeridos"})
	}
	result, err := h.scan.ScanProduct(c.Context(), scanning.ScanInputDTO{
		TransferID: transferID,
		Barcode:    in.Barcode,
		LocationID: in.LocationID,
		LotID:      in.LotID,
		ScanID:     in.ScanID,
		DeviceID:   GetDeviceID(c),
	})
	if err != nil {
		return scanError(c, err)
	}
	return c.JSON(result)
}

// ProcessBatch godoc
// @Summary      Reprocesar un lote de escaneos offline
// @Description  Reproduce en orden los escaneos acumulados sin conexión. Cada evento se
//
//	valida de forma independiente: los fallos no abortan el lote y los
//	scan_id ya aplicados se reconocen como éxito sin duplicar cantidades.
//
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la transferencia"
// @Param        body  body  dto.BatchRequest  true  "scans: lista ordenada de eventos offline"
// @Success      200   {array}   dto.BatchResultDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/batch [post]
func (h *ScanHandler) ProcessBatch(c *fiber.Ctx) error {
	transferID := c.Params("id")
	var in dto.BatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if transferID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de transferencia requerido"})
	}
	results, err := h.batch.ProcessBatch(c.Context(), transferID, GetDeviceID(c), in.Scans)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transferencia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total":   len(results),
		"results": results,
	})
}

// FinalizeTransfer godoc
// @Summary      Cerrar una transferencia (puerta de cumplimiento)
// @Description  Verifica que toda línea cumpla cantidad escaneada == reservada, que no
//
//	existan líneas fuera de plan y que el destino sea consistente. Si hay
//	violaciones la transferencia queda bloqueada y se devuelven todas.
//
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.FinalizeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/finalize [post]
func (h *ScanHandler) FinalizeTransfer(c *fiber.Ctx) error {
	transferID := c.Params("id")
	if transferID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de transferencia requerido"})
	}
	result, err := h.compliance.FinalizeTransfer(c.Context(), transferID, GetDeviceID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transferencia no encontrada"})
		}
		if errors.Is(err, domain.ErrTransferNotOpen) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSFER_NOT_OPEN", Message: "la transferencia ya fue cerrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// GetNearestExpiryLot godoc
// @Summary      Lote más próximo a vencer de un producto
// @Description  Devuelve el lote con fecha de vencimiento más cercana entre las
//
//	existencias internas con cantidad positiva y vencimiento futuro (FEFO).
//
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.NearestExpiryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/nearest-expiry [get]
func (h *ScanHandler) GetNearestExpiryLot(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de producto requerido"})
	}
	result, err := h.expiry.NearestExpiryLot(c.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto sin lotes vigentes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// GetAuditTrail godoc
// @Summary      Historial de auditoría de una transferencia
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la transferencia"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Máximo de entradas (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.AuditEntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/audit [get]
func (h *ScanHandler) GetAuditTrail(c *fiber.Ctx) error {
	transferID := c.Params("id")
	if transferID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de transferencia requerido"})
	}
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, usar RFC3339"})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, usar RFC3339"})
		}
		to = &t
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	entries, err := h.history.ListByTransfer(c.Context(), transferID, from, to, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total":   len(entries),
		"entries": entries,
	})
}

// scanError traduce los errores de validación de escaneo a códigos HTTP. Toda
// violación de regla de escaneo responde 422 con el código de la regla rota;
// el exceso de cantidad responde 409 porque puede deberse a una carrera entre
// terminales.
func scanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrTransferNotOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSFER_NOT_OPEN", Message: err.Error()})
	case errors.Is(err, domain.ErrQuantityExceeded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "QUANTITY_EXCEEDED", Message: err.Error()})
	case errors.Is(err, domain.ErrBarcodeUnresolved):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "BARCODE_UNRESOLVED", Message: err.Error()})
	case errors.Is(err, domain.ErrLocationMismatch):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "LOCATION_MISMATCH", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotPlanned):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_PLANNED", Message: err.Error()})
	case errors.Is(err, domain.ErrLotUnauthorized):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "LOT_UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrLotRequired):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "LOT_REQUIRED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
