package scanning_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/easyrewardph/bayani/internal/domain/scanning"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestSortFEFO valida el orden exacto de remoción de existencias: vence
// primero va primero, desempate por nombre completo de ubicación y los
// candidatos sin lote/vencimiento al final. Este orden decide qué mercancía
// física sale de bodega, así que el test fija el contrato completo.
// ──────────────────────────────────────────────────────────────────────────────

func fecha(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("fecha de prueba inválida %q: %v", s, err)
	}
	return &ts
}

func candidato(lot, loc string, exp *time.Time) scanning.StockCandidate {
	return scanning.StockCandidate{
		ProductID:      "prod-1",
		LocationID:     loc,
		LocationName:   loc,
		LotID:          lot,
		LotName:        lot,
		ExpirationDate: exp,
		AvailableQty:   decimal.NewFromInt(10),
	}
}

// Caso 1: vencimiento más próximo primero, sin importar el orden de entrada.
func TestSortFEFO_VencimientoMasProximoPrimero(t *testing.T) {
	cands := []scanning.StockCandidate{
		candidato("LOT-C", "WH/Stock/C", fecha(t, "2026-12-01")),
		candidato("LOT-A", "WH/Stock/A", fecha(t, "2026-09-15")),
		candidato("LOT-B", "WH/Stock/B", fecha(t, "2026-10-01")),
	}

	scanning.SortFEFO(cands)

	assert.Equal(t, "LOT-A", cands[0].LotID)
	assert.Equal(t, "LOT-B", cands[1].LotID)
	assert.Equal(t, "LOT-C", cands[2].LotID)
}

// Caso 2: a igual vencimiento desempata el nombre completo de ubicación.
func TestSortFEFO_EmpateDesempataPorUbicacion(t *testing.T) {
	exp := fecha(t, "2026-10-01")
	cands := []scanning.StockCandidate{
		candidato("LOT-Z", "WH/Stock/Shelf 2", exp),
		candidato("LOT-Y", "WH/Stock/Shelf 1", exp),
	}

	scanning.SortFEFO(cands)

	assert.Equal(t, "WH/Stock/Shelf 1", cands[0].LocationName,
		"a igual vencimiento debe ganar la ubicación alfabéticamente menor")
	assert.Equal(t, "WH/Stock/Shelf 2", cands[1].LocationName)
}

// Caso 3: candidatos sin fecha de vencimiento van después de los que vencen.
func TestSortFEFO_SinVencimientoAlFinal(t *testing.T) {
	cands := []scanning.StockCandidate{
		candidato("LOT-SIN-EXP", "WH/Stock/A", nil),
		candidato("LOT-EXP", "WH/Stock/B", fecha(t, "2027-01-01")),
	}

	scanning.SortFEFO(cands)

	assert.Equal(t, "LOT-EXP", cands[0].LotID,
		"el candidato con vencimiento debe ir antes que el que no vence")
	assert.Equal(t, "LOT-SIN-EXP", cands[1].LotID)
}

// Caso 4: a igual vencimiento e igual ubicación, el candidato sin lote pierde.
func TestSortFEFO_SinLoteAlFinal(t *testing.T) {
	cands := []scanning.StockCandidate{
		candidato("", "WH/Stock/A", nil),
		candidato("LOT-1", "WH/Stock/A", nil),
	}

	scanning.SortFEFO(cands)

	assert.Equal(t, "LOT-1", cands[0].LotID)
	assert.Equal(t, "", cands[1].LotID)
}

// Caso 5: el orden es estable, las entradas equivalentes no se reordenan.
func TestSortFEFO_Estable(t *testing.T) {
	exp := fecha(t, "2026-10-01")
	a := candidato("LOT-1", "WH/Stock/A", exp)
	b := candidato("LOT-2", "WH/Stock/A", exp)
	cands := []scanning.StockCandidate{a, b}

	scanning.SortFEFO(cands)

	assert.Equal(t, "LOT-1", cands[0].LotID)
	assert.Equal(t, "LOT-2", cands[1].LotID)
}
