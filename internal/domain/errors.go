package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores de validación de escaneo son recuperables: se reportan al
// operador con mensaje legible y nunca abortan un batch completo.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Taxonomía del validador de escaneo estricto.
	ErrBarcodeUnresolved    = errors.New("código de barras no reconocido en el sistema")
	ErrLocationMismatch     = errors.New("la ubicación no pertenece a la transferencia")
	ErrProductNotPlanned    = errors.New("el producto no es parte de esta transferencia")
	ErrLotUnauthorized      = errors.New("el lote no coincide con ninguna línea reservada")
	ErrLotRequired          = errors.New("el producto requiere lote y no se indicó ninguno")
	ErrQuantityExceeded     = errors.New("cantidad reservada ya escaneada en su totalidad")
	ErrUnplannedLine        = errors.New("línea no planificada detectada")
	ErrLocationInconsistent = errors.New("línea con destino distinto al destino de la transferencia")
	ErrQuantityInvariant    = errors.New("cantidad escaneada excede la reservada")
	ErrTransferNotOpen      = errors.New("la transferencia no admite escaneos en su estado actual")
)

// IsScanValidationError indica si el error pertenece a la taxonomía de
// validación de escaneo (recuperable, accionable por el operador), en
// contraposición a una falla genuina de sistema.
func IsScanValidationError(err error) bool {
	for _, target := range []error{
		ErrBarcodeUnresolved, ErrLocationMismatch, ErrProductNotPlanned,
		ErrLotUnauthorized, ErrLotRequired, ErrQuantityExceeded,
		ErrUnplannedLine, ErrLocationInconsistent, ErrQuantityInvariant,
		ErrTransferNotOpen, ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
