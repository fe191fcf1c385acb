package scanning_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/scanning"
)

// El enum de códigos de razón es compartido con los reportes de operación;
// este test fija el mapeo error → código para que no se mueva sin querer.
func TestReasonForError_Mapeo(t *testing.T) {
	casos := []struct {
		err    error
		reason string
	}{
		{domain.ErrQuantityExceeded, entity.ReasonShortStock},
		{domain.ErrQuantityInvariant, entity.ReasonShortStock},
		{domain.ErrBarcodeUnresolved, entity.ReasonWrongProduct},
		{domain.ErrProductNotPlanned, entity.ReasonWrongProduct},
		{domain.ErrUnplannedLine, entity.ReasonWrongProduct},
		{domain.ErrLotUnauthorized, entity.ReasonExpiry},
		{domain.ErrLotRequired, entity.ReasonExpiry},
		{domain.ErrLocationMismatch, entity.ReasonOther},
		{domain.ErrTransferNotOpen, entity.ReasonOther},
	}
	for _, c := range casos {
		assert.Equal(t, c.reason, scanning.ReasonForError(c.err), c.err.Error())
	}
}

// Los errores envueltos conservan su código de razón (errors.Is).
func TestReasonForError_ErrorEnvuelto(t *testing.T) {
	wrapped := fmt.Errorf("%w; Coca-Cola 350ml", domain.ErrQuantityExceeded)
	assert.Equal(t, entity.ReasonShortStock, scanning.ReasonForError(wrapped))
}
