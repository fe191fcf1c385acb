package scanning_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/application/scanning"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
)

func newComplianceUC(f *fixture, policy scanning.Policy) *scanning.ComplianceUseCase {
	return scanning.NewComplianceUseCase(
		&fakeTransferRepo{s: f.state},
		&fakeLineRepo{s: f.state},
		&fakeAuditRepo{s: f.state},
		f.pub,
		policy,
	)
}

func violationKinds(violations []dto.ComplianceViolationDTO) []string {
	kinds := make([]string, 0, len(violations))
	for _, v := range violations {
		kinds = append(kinds, v.Kind)
	}
	return kinds
}

// Plan consistente: el gate pasa, la transferencia transiciona a done y el
// veredicto queda auditado.
func TestFinalizeTransfer_PlanConsistentePasa(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	uc := newComplianceUC(f, scanning.DefaultPolicy())

	result, err := uc.FinalizeTransfer(context.Background(), "T1", "dev-sup")
	require.NoError(t, err)

	assert.Equal(t, "done", result.Status)
	assert.Empty(t, result.Violations)

	f.state.mu.Lock()
	transfer := f.state.transfers["T1"]
	f.state.mu.Unlock()
	assert.Equal(t, entity.TransferStateDone, transfer.State)
	assert.NotNil(t, transfer.DoneAt)

	assert.Contains(t, f.pub.keys(), "compliance.passed")
}

// Línea ad-hoc (reservado 0, escaneado > 0): bloquea con unplanned_line y la
// transferencia queda intacta.
func TestFinalizeTransfer_AdicionNoPlanificadaBloquea(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	f.state.lines["L9"] = &entity.PlannedLine{
		ID: "L9", TransferID: "T1", ProductID: "p-choco",
		SourceLocationID: "loc-src", DestLocationID: "loc-dst",
		ReservedQty: decimal.Zero, ScannedQty: decimal.NewFromInt(1), Sequence: 90,
	}
	uc := newComplianceUC(f, scanning.DefaultPolicy())

	result, err := uc.FinalizeTransfer(context.Background(), "T1", "dev-sup")
	require.NoError(t, err)

	assert.Equal(t, "blocked", result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, scanning.ViolationUnplannedLine, result.Violations[0].Kind)
	assert.Equal(t, "L9", result.Violations[0].LineID)

	f.state.mu.Lock()
	state := f.state.transfers["T1"].State
	f.state.mu.Unlock()
	assert.Equal(t, entity.TransferStateConfirmed, state, "bloqueada no transiciona")

	fails := f.state.eventosPorTipo(entity.AuditEventValidationFail)
	require.Len(t, fails, 1)
	assert.Contains(t, fails[0].Detail, scanning.ViolationUnplannedLine)
}

// Cantidad escaneada por encima de lo reservado: invariante roto.
func TestFinalizeTransfer_CantidadSobreReservadoBloquea(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	f.state.lines["L1"].ScannedQty = decimal.NewFromInt(5) // reservado 3

	uc := newComplianceUC(f, scanning.DefaultPolicy())
	result, err := uc.FinalizeTransfer(context.Background(), "T1", "dev-sup")
	require.NoError(t, err)

	assert.Equal(t, "blocked", result.Status)
	assert.Contains(t, violationKinds(result.Violations), scanning.ViolationQuantityInvariant)
}

// Línea con destino distinto al de la transferencia bajo destino único.
func TestFinalizeTransfer_DestinoInconsistenteBloquea(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	f.state.lines["L2"].DestLocationID = "loc-otra"

	uc := newComplianceUC(f, scanning.DefaultPolicy())
	result, err := uc.FinalizeTransfer(context.Background(), "T1", "dev-sup")
	require.NoError(t, err)

	assert.Equal(t, "blocked", result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, scanning.ViolationLocationInconsistent, result.Violations[0].Kind)
	assert.Equal(t, "L2", result.Violations[0].LineID)
}

// Con SingleDestination apagado, el destino divergente deja de ser violación.
func TestFinalizeTransfer_DestinoDivergenteSinPoliticaPasa(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	f.state.lines["L2"].DestLocationID = "loc-otra"

	uc := newComplianceUC(f, scanning.Policy{SingleDestination: false, EnforceLotTracking: true})
	result, err := uc.FinalizeTransfer(context.Background(), "T1", "dev-sup")
	require.NoError(t, err)
	assert.Equal(t, "done", result.Status)
}

// El gate recolecta todas las violaciones en una pasada, no solo la primera.
func TestFinalizeTransfer_RecolectaTodasLasViolaciones(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	f.state.lines["L1"].ScannedQty = decimal.NewFromInt(9)
	f.state.lines["L2"].DestLocationID = "loc-otra"
	f.state.lines["L9"] = &entity.PlannedLine{
		ID: "L9", TransferID: "T1", ProductID: "p-choco",
		SourceLocationID: "loc-src", DestLocationID: "loc-dst",
		ReservedQty: decimal.Zero, ScannedQty: decimal.NewFromInt(2), Sequence: 90,
	}

	uc := newComplianceUC(f, scanning.DefaultPolicy())
	result, err := uc.FinalizeTransfer(context.Background(), "T1", "dev-sup")
	require.NoError(t, err)

	kinds := violationKinds(result.Violations)
	assert.Contains(t, kinds, scanning.ViolationQuantityInvariant)
	assert.Contains(t, kinds, scanning.ViolationLocationInconsistent)
	assert.Contains(t, kinds, scanning.ViolationUnplannedLine)
	assert.Len(t, result.Violations, 3)
}

// Una transferencia ya cerrada no se finaliza dos veces.
func TestFinalizeTransfer_YaCerradaEsError(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	f.state.transfers["T1"].State = entity.TransferStateDone

	uc := newComplianceUC(f, scanning.DefaultPolicy())
	_, err := uc.FinalizeTransfer(context.Background(), "T1", "dev-sup")
	require.ErrorIs(t, err, domain.ErrTransferNotOpen)
}

func TestFinalizeTransfer_TransferenciaInexistente(t *testing.T) {
	f := newFixture(t, scanning.DefaultPolicy())
	uc := newComplianceUC(f, scanning.DefaultPolicy())

	_, err := uc.FinalizeTransfer(context.Background(), "NO-EXISTE", "dev-sup")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
