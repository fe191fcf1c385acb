package scanning

import (
	"context"
	"time"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/repository"
	domscan "github.com/easyrewardph/bayani/internal/domain/scanning"
)

// ExpiryUseCase expone el lote con vencimiento más próximo de un producto,
// usando el mismo orden FEFO que gobierna el consumo de existencias.
type ExpiryUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewExpiryUseCase construye el caso de uso.
func NewExpiryUseCase(productRepo repository.ProductRepository, stockRepo repository.StockRepository) *ExpiryUseCase {
	return &ExpiryUseCase{productRepo: productRepo, stockRepo: stockRepo}
}

// NearestExpiryLot devuelve el lote activo (vence después de hoy, con
// existencia positiva) que vence primero. Sin lote elegible la respuesta va
// sin lote, no es error.
func (uc *ExpiryUseCase) NearestExpiryLot(_ context.Context, productID string) (*dto.NearestExpiryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	candidates, err := uc.stockRepo.ListCandidatesByProduct(productID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	active := candidates[:0:0]
	for _, c := range candidates {
		if c.LotID == "" || c.ExpirationDate == nil {
			continue
		}
		if !c.ExpirationDate.After(today) {
			continue
		}
		if !c.AvailableQty.IsPositive() {
			continue
		}
		active = append(active, c)
	}

	resp := &dto.NearestExpiryResponse{ProductID: productID}
	if len(active) == 0 {
		return resp, nil
	}
	domscan.SortFEFO(active)
	resp.LotID = active[0].LotID
	resp.LotName = active[0].LotName
	resp.ExpirationDate = active[0].ExpirationDate
	return resp, nil
}
