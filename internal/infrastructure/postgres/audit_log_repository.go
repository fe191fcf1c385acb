package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación append-only del log de auditoría sobre
// PostgreSQL (usable con pool o tx). No existe Update ni Delete.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditColumns = `id, transfer_id, COALESCE(scan_id, ''), COALESCE(line_id, ''), event_type,
	COALESCE(barcode, ''), COALESCE(reason_code, ''), COALESCE(detail, ''), COALESCE(device_id, ''), ts`

// Append inserta una entrada. La tabla no tiene caminos de actualización.
func (r *AuditLogRepo) Append(entry *entity.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	query := `
		INSERT INTO scan_audit_log (id, transfer_id, scan_id, line_id, event_type, barcode, reason_code, detail, device_id, ts)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.TransferID, entry.ScanID, entry.LineID, entry.EventType,
		entry.Barcode, entry.ReasonCode, entry.Detail, entry.DeviceID, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListByTransfer devuelve el historial de una transferencia, de más reciente a
// más antiguo, opcionalmente acotado por rango de tiempo.
func (r *AuditLogRepo) ListByTransfer(transferID string, from, to *time.Time, limit, offset int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM scan_audit_log
		WHERE transfer_id = $1
		  AND ($2::timestamptz IS NULL OR ts >= $2)
		  AND ($3::timestamptz IS NULL OR ts <= $3)
		ORDER BY ts DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, transferID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		if err := rows.Scan(
			&e.ID, &e.TransferID, &e.ScanID, &e.LineID, &e.EventType,
			&e.Barcode, &e.ReasonCode, &e.Detail, &e.DeviceID, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// FindAppliedScan busca la entrada scan exitosa previa con el mismo scan id de
// cliente. Devuelve nil si el scan id nunca se aplicó en esta transferencia.
func (r *AuditLogRepo) FindAppliedScan(transferID, scanID string) (*entity.AuditLogEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM scan_audit_log
		WHERE transfer_id = $1 AND scan_id = $2 AND event_type = 'scan'
		ORDER BY ts
		LIMIT 1`
	var e entity.AuditLogEntry
	err := r.q.QueryRow(context.Background(), query, transferID, scanID).Scan(
		&e.ID, &e.TransferID, &e.ScanID, &e.LineID, &e.EventType,
		&e.Barcode, &e.ReasonCode, &e.Detail, &e.DeviceID, &e.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find applied scan: %w", err)
	}
	return &e, nil
}
