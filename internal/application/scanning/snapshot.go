package scanning

import (
	"context"
	"fmt"
	"time"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

// SnapshotUseCase proyecta el plan vigente de una transferencia en un
// documento autocontenido para uso offline: líneas con descriptores completos
// e índices de búsqueda por barcode. Solo lectura, sin efectos.
type SnapshotUseCase struct {
	transferRepo repository.TransferRepository
	lineRepo     repository.PlannedLineRepository
	productRepo  repository.ProductRepository
	lotRepo      repository.LotRepository
	locationRepo repository.LocationRepository
	stockRepo    repository.StockRepository
}

// NewSnapshotUseCase construye el proyector de snapshots.
func NewSnapshotUseCase(
	transferRepo repository.TransferRepository,
	lineRepo repository.PlannedLineRepository,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	locationRepo repository.LocationRepository,
	stockRepo repository.StockRepository,
) *SnapshotUseCase {
	return &SnapshotUseCase{
		transferRepo: transferRepo,
		lineRepo:     lineRepo,
		productRepo:  productRepo,
		lotRepo:      lotRepo,
		locationRepo: locationRepo,
		stockRepo:    stockRepo,
	}
}

// GetSnapshot arma el documento para una transferencia. ErrNotFound si no existe.
func (uc *SnapshotUseCase) GetSnapshot(_ context.Context, transferID string) (*dto.SnapshotResponse, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, fmt.Errorf("consultar transferencia: %w", err)
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}

	lines, err := uc.lineRepo.ListByTransfer(transferID)
	if err != nil {
		return nil, fmt.Errorf("líneas del plan: %w", err)
	}

	locations, err := uc.resolveLocations(lines)
	if err != nil {
		return nil, err
	}

	snapshot := &dto.SnapshotResponse{
		TransferID:        transfer.ID,
		Reference:         transfer.Reference,
		State:             transfer.State,
		SourceLocationID:  transfer.SourceLocationID,
		DestLocationID:    transfer.DestLocationID,
		Lines:             make([]dto.SnapshotLineDTO, 0, len(lines)),
		BarcodeToLocation: make(map[string]string),
		BarcodeToProduct:  make(map[string]string),
		LotIndex:          make(map[string]dto.LotIndexEntry),
		GeneratedAt:       time.Now(),
	}

	products := make(map[string]*entity.Product)
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			product, err = uc.productRepo.GetByID(line.ProductID)
			if err != nil {
				return nil, fmt.Errorf("producto %s: %w", line.ProductID, err)
			}
			if product == nil {
				return nil, fmt.Errorf("producto %s: %w", line.ProductID, domain.ErrNotFound)
			}
			products[line.ProductID] = product
			// Índice barcode→producto, incluyendo códigos de empaque.
			if product.Barcode != "" {
				snapshot.BarcodeToProduct[product.Barcode] = product.ID
			}
			for _, pkg := range product.PackagingBarcodes {
				snapshot.BarcodeToProduct[pkg] = product.ID
			}
		}

		lineDTO := dto.SnapshotLineDTO{
			LineID:         line.ID,
			ProductID:      product.ID,
			ProductBarcode: product.Barcode,
			ProductName:    product.Name,
			Tracking:       product.Tracking,
			ReservedQty:    line.ReservedQty,
			ScannedQty:     line.ScannedQty,
			SourceLocation: locationDTO(locations[line.SourceLocationID], line.SourceLocationID),
			DestLocation:   locationDTO(locations[line.DestLocationID], line.DestLocationID),
		}

		if line.LotID != "" {
			lot, err := uc.lotRepo.GetByID(line.LotID)
			if err != nil {
				return nil, fmt.Errorf("lote %s: %w", line.LotID, err)
			}
			if lot != nil {
				lineDTO.LotID = lot.ID
				lineDTO.LotName = lot.Name
				snapshot.LotIndex[lot.Name] = dto.LotIndexEntry{LotID: lot.ID, ProductID: lot.ProductID}
			}
		}

		available, err := uc.stockRepo.AvailableQty(line.ProductID, line.SourceLocationID)
		if err != nil {
			return nil, fmt.Errorf("disponible en origen: %w", err)
		}
		lineDTO.AvailableQty = available

		snapshot.Lines = append(snapshot.Lines, lineDTO)
	}

	// Índice barcode→ubicación sobre las ubicaciones referenciadas. Solo las
	// internas son sitios de escaneo válidos; destinos cliente/proveedor no
	// entran al índice.
	for _, loc := range locations {
		if loc.Barcode != "" && loc.IsInternal() {
			snapshot.BarcodeToLocation[loc.Barcode] = loc.ID
		}
	}

	return snapshot, nil
}

// resolveLocations trae de una vez todas las ubicaciones origen/destino de las líneas.
func (uc *SnapshotUseCase) resolveLocations(lines []*entity.PlannedLine) (map[string]*entity.Location, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, line := range lines {
		for _, id := range []string{line.SourceLocationID, line.DestLocationID} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	locs, err := uc.locationRepo.ListByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("ubicaciones: %w", err)
	}
	byID := make(map[string]*entity.Location, len(locs))
	for _, loc := range locs {
		byID[loc.ID] = loc
	}
	return byID, nil
}

func locationDTO(loc *entity.Location, fallbackID string) dto.LocationDTO {
	if loc == nil {
		return dto.LocationDTO{ID: fallbackID}
	}
	name := loc.CompleteName
	if name == "" {
		name = loc.Name
	}
	return dto.LocationDTO{ID: loc.ID, Barcode: loc.Barcode, Name: name}
}
