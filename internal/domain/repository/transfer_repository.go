package repository

import (
	"time"

	"github.com/easyrewardph/bayani/internal/domain/entity"
)

// TransferRepository define el puerto de lectura/transición sobre el plan de
// transferencias (colaborador externo: este núcleo lo consume, no lo
// administra). La única mutación permitida es la transición a done tras pasar
// el compliance gate.
type TransferRepository interface {
	GetByID(id string) (*entity.Transfer, error)
	MarkDone(id string, at time.Time) error
}
