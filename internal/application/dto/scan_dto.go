package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationDTO descriptor de ubicación dentro de un snapshot.
type LocationDTO struct {
	ID      string `json:"id"`
	Barcode string `json:"barcode,omitempty"`
	Name    string `json:"name"`
}

// SnapshotLineDTO una línea reservada proyectada para uso offline.
type SnapshotLineDTO struct {
	LineID         string          `json:"line_id"`
	ProductID      string          `json:"product_id"`
	ProductBarcode string          `json:"product_barcode"`
	ProductName    string          `json:"product_name"`
	Tracking       string          `json:"tracking"`
	LotID          string          `json:"lot_id,omitempty"`
	LotName        string          `json:"lot_name,omitempty"`
	ReservedQty    decimal.Decimal `json:"reserved_qty"`
	ScannedQty     decimal.Decimal `json:"scanned_qty"`
	SourceLocation LocationDTO     `json:"source_location"`
	DestLocation   LocationDTO     `json:"dest_location"`
	AvailableQty   decimal.Decimal `json:"available_qty"`
}

// LotIndexEntry entrada del índice lot-name → lote/producto.
type LotIndexEntry struct {
	LotID     string `json:"lot_id"`
	ProductID string `json:"product_id"`
}

// SnapshotResponse documento autocontenido del plan de una transferencia.
// Los índices permiten al dispositivo validar escaneos localmente con las
// mismas reglas que el servidor reaplicará; el replay del servidor manda.
type SnapshotResponse struct {
	TransferID        string                   `json:"transfer_id"`
	Reference         string                   `json:"reference"`
	State             string                   `json:"state"`
	SourceLocationID  string                   `json:"source_location_id"`
	DestLocationID    string                   `json:"dest_location_id"`
	Lines             []SnapshotLineDTO        `json:"lines"`
	BarcodeToLocation map[string]string        `json:"barcode_to_location"`
	BarcodeToProduct  map[string]string        `json:"barcode_to_product"`
	LotIndex          map[string]LotIndexEntry `json:"lot_index"`
	GeneratedAt       time.Time                `json:"generated_at"`
}

// ScanRequest cuerpo de un escaneo individual en línea. ScanID es opcional:
// si la terminal lo asigna, el escaneo queda cubierto por la misma llave de
// idempotencia que el replay de batches.
type ScanRequest struct {
	Barcode    string `json:"barcode"`
	LocationID string `json:"location_id,omitempty"`
	LotID      string `json:"lot_id,omitempty"`
	ScanID     string `json:"scan_id,omitempty"`
}

// ScanResultDTO resultado de un escaneo aplicado con éxito.
type ScanResultDTO struct {
	LineID      string          `json:"line_id"`
	ProductName string          `json:"product_name"`
	LotName     string          `json:"lot_name,omitempty"`
	Remaining   decimal.Decimal `json:"remaining"`
	Message     string          `json:"message"`
}

// BatchScanDTO un evento de escaneo encolado (posiblemente offline).
type BatchScanDTO struct {
	ScanID     string    `json:"scan_id"`
	Barcode    string    `json:"barcode"`
	LocationID string    `json:"location_id,omitempty"`
	LotID      string    `json:"lot_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// BatchRequest lote ordenado de escaneos capturados por el dispositivo.
type BatchRequest struct {
	Scans []BatchScanDTO `json:"scans"`
}

// Estados por evento del resultado de un batch.
const (
	BatchStatusSuccess = "success"
	BatchStatusError   = "error"
)

// BatchResultDTO resultado por evento, paralelo al orden de entrada.
type BatchResultDTO struct {
	ScanID  string `json:"scan_id"`
	Status  string `json:"status"` // success | error
	Message string `json:"message"`
}

// ComplianceViolationDTO una violación detectada por el compliance gate.
type ComplianceViolationDTO struct {
	LineID  string `json:"line_id,omitempty"`
	Kind    string `json:"kind"` // quantity_invariant_broken | location_inconsistent | unplanned_line
	Message string `json:"message"`
}

// FinalizeResponse resultado del gate: ok, o la lista completa de violaciones
// (no fail-fast, el operador ve todos los problemas en una pasada).
type FinalizeResponse struct {
	Status     string                   `json:"status"` // done | blocked
	Violations []ComplianceViolationDTO `json:"violations,omitempty"`
}

// NearestExpiryResponse lote con vencimiento más próximo para un producto.
type NearestExpiryResponse struct {
	ProductID      string     `json:"product_id"`
	LotID          string     `json:"lot_id,omitempty"`
	LotName        string     `json:"lot_name,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// AuditEntryDTO entrada del historial para el operador.
type AuditEntryDTO struct {
	ID         string    `json:"id"`
	ScanID     string    `json:"scan_id,omitempty"`
	LineID     string    `json:"line_id,omitempty"`
	EventType  string    `json:"event_type"`
	Barcode    string    `json:"barcode,omitempty"`
	ReasonCode string    `json:"reason_code,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	DeviceID   string    `json:"device_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
