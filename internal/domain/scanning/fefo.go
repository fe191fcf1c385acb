package scanning

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StockCandidate es una existencia candidata a ser consumida: producto en una
// ubicación concreta, con lote opcional. Es la proyección mínima que necesita
// el orden de remoción.
type StockCandidate struct {
	ProductID        string
	LocationID       string
	LocationName     string // nombre jerárquico completo, criterio de desempate
	LotID            string
	LotName          string
	ExpirationDate   *time.Time // nil = sin vencimiento
	AvailableQty     decimal.Decimal
}

// SortFEFO ordena candidatos en sitio según first-expiry-first-out:
// vence primero va primero; a igual vencimiento desempata el nombre de
// ubicación en orden alfabético; los candidatos sin lote o sin fecha de
// vencimiento van al final. Este orden determina qué existencia física se
// consume primero y debe preservarse exacto.
func SortFEFO(candidates []StockCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		aExp, bExp := a.ExpirationDate, b.ExpirationDate
		if (aExp == nil) != (bExp == nil) {
			return aExp != nil // con vencimiento antes que sin vencimiento
		}
		if aExp != nil && bExp != nil && !aExp.Equal(*bExp) {
			return aExp.Before(*bExp)
		}
		if a.LocationName != b.LocationName {
			return a.LocationName < b.LocationName
		}
		// sin lote al final, como el orden de remoción original
		return a.LotID != "" && b.LotID == ""
	})
}
