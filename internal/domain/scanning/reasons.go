package scanning

import (
	"errors"

	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
)

// ReasonForError traduce un error de la taxonomía de validación al código de
// razón del log de auditoría. Fallas de sistema no mapean aquí (van con
// event_type=error y razón other).
func ReasonForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrQuantityExceeded),
		errors.Is(err, domain.ErrQuantityInvariant):
		return entity.ReasonShortStock
	case errors.Is(err, domain.ErrBarcodeUnresolved),
		errors.Is(err, domain.ErrProductNotPlanned),
		errors.Is(err, domain.ErrUnplannedLine):
		return entity.ReasonWrongProduct
	case errors.Is(err, domain.ErrLotUnauthorized),
		errors.Is(err, domain.ErrLotRequired):
		return entity.ReasonExpiry
	default:
		return entity.ReasonOther
	}
}
