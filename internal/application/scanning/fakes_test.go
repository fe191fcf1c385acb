package scanning_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
	domscan "github.com/easyrewardph/bayani/internal/domain/scanning"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Un único estado compartido con un mutex, detrás de adaptadores finos por
// puerto. El mutex importa: los tests de carrera escanean desde varias
// goroutines y el fake debe comportarse como la BD (incremento condicional
// atómico).
// ──────────────────────────────────────────────────────────────────────────────

type fakeState struct {
	mu        sync.Mutex
	transfers map[string]*entity.Transfer
	lines     map[string]*entity.PlannedLine
	products  map[string]*entity.Product
	lots      map[string]*entity.Lot
	locations map[string]*entity.Location
	stock     []domscan.StockCandidate
	audit     []*entity.AuditLogEntry
}

func newFakeState() *fakeState {
	return &fakeState{
		transfers: make(map[string]*entity.Transfer),
		lines:     make(map[string]*entity.PlannedLine),
		products:  make(map[string]*entity.Product),
		lots:      make(map[string]*entity.Lot),
		locations: make(map[string]*entity.Location),
	}
}

func copyLine(l *entity.PlannedLine) *entity.PlannedLine {
	c := *l
	return &c
}

// ── TransferRepository ────────────────────────────────────────────────────────

type fakeTransferRepo struct{ s *fakeState }

func (r *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *fakeTransferRepo) MarkDone(id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok {
		return nil
	}
	t.State = entity.TransferStateDone
	t.DoneAt = &at
	return nil
}

// ── PlannedLineRepository ─────────────────────────────────────────────────────

type fakeLineRepo struct{ s *fakeState }

func (r *fakeLineRepo) ListByTransfer(transferID string) ([]*entity.PlannedLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PlannedLine
	for _, l := range r.s.lines {
		if l.TransferID == transferID {
			out = append(out, copyLine(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeLineRepo) GetByID(id string) (*entity.PlannedLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	return copyLine(l), nil
}

// IncrementScanned imita el UPDATE condicional: solo avanza si queda capacidad.
func (r *fakeLineRepo) IncrementScanned(lineID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[lineID]
	if !ok {
		return false, nil
	}
	if !l.ScannedQty.LessThan(l.ReservedQty) {
		return false, nil
	}
	l.ScannedQty = l.ScannedQty.Add(decimal.NewFromInt(1))
	l.UpdatedAt = time.Now()
	return true, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeState }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) FindByBarcode(barcode string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			c := *p
			return &c, nil
		}
		for _, pkg := range p.PackagingBarcodes {
			if pkg == barcode {
				c := *p
				return &c, nil
			}
		}
	}
	return nil, nil
}

// ── LotRepository ─────────────────────────────────────────────────────────────

type fakeLotRepo struct{ s *fakeState }

func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *fakeLotRepo) FindByName(name string) (*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.lots {
		if l.Name == name {
			c := *l
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeLotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.ProductID == productID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── LocationRepository ────────────────────────────────────────────────────────

type fakeLocationRepo struct{ s *fakeState }

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *fakeLocationRepo) ListByIDs(ids []string) ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Location
	for _, id := range ids {
		if l, ok := r.s.locations[id]; ok {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── StockRepository ───────────────────────────────────────────────────────────

type fakeStockRepo struct{ s *fakeState }

func (r *fakeStockRepo) AvailableQty(productID, locationID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, c := range r.s.stock {
		if c.ProductID == productID && c.LocationID == locationID {
			total = total.Add(c.AvailableQty)
		}
	}
	return total, nil
}

func (r *fakeStockRepo) ListCandidatesByProduct(productID string) ([]domscan.StockCandidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domscan.StockCandidate
	for _, c := range r.s.stock {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ── AuditLogRepository ────────────────────────────────────────────────────────

type fakeAuditRepo struct{ s *fakeState }

func (r *fakeAuditRepo) Append(entry *entity.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *entry
	r.s.audit = append(r.s.audit, &c)
	return nil
}

func (r *fakeAuditRepo) ListByTransfer(transferID string, from, to *time.Time, limit, offset int) ([]*entity.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AuditLogEntry
	for i := len(r.s.audit) - 1; i >= 0; i-- { // más reciente primero
		e := r.s.audit[i]
		if e.TransferID != transferID {
			continue
		}
		if from != nil && e.Timestamp.Before(*from) {
			continue
		}
		if to != nil && e.Timestamp.After(*to) {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAuditRepo) FindAppliedScan(transferID, scanID string) (*entity.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.audit {
		if e.TransferID == transferID && e.ScanID == scanID && e.EventType == entity.AuditEventScan {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

// eventosPorTipo cuenta entradas de auditoría por tipo de evento.
func (s *fakeState) eventosPorTipo(tipo string) []*entity.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.AuditLogEntry
	for _, e := range s.audit {
		if e.EventType == tipo {
			out = append(out, e)
		}
	}
	return out
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el fn directamente sobre los repos en memoria; la
// atomicidad por línea la da el mutex del estado.
type fakeTxRunner struct {
	lineRepo  repository.PlannedLineRepository
	auditRepo repository.AuditLogRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.PlannedLineRepository, repository.AuditLogRepository) error) error {
	return fn(r.lineRepo, r.auditRepo)
}

// ── EventPublisher / AttemptSink ──────────────────────────────────────────────

type publishedEvent struct {
	Key     string
	Payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Key: routingKey, Payload: payload})
	return nil
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Key)
	}
	return out
}

type recordedAttempt struct {
	Barcode string
	Status  string
	Message string
}

type fakeSink struct {
	mu       sync.Mutex
	attempts []recordedAttempt
}

func (s *fakeSink) Record(barcode, status, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, recordedAttempt{Barcode: barcode, Status: status, Message: message})
}
