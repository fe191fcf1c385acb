package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo implementación del puerto DeviceRepository sobre PostgreSQL
// (usable con pool o tx).
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador de terminales. Pasar pool o tx (Querier).
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Create persiste una nueva terminal. ErrDuplicate si el código ya existe.
func (r *DeviceRepo) Create(device *entity.Device) error {
	query := `
		INSERT INTO devices (id, code, name, secret_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		device.ID, device.Code, device.Name, device.SecretHash, device.Role,
		device.Active, device.CreatedAt, device.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// FindByCode obtiene una terminal por su código físico. Devuelve nil si no existe.
func (r *DeviceRepo) FindByCode(code string) (*entity.Device, error) {
	query := `
		SELECT id, code, name, secret_hash, role, active, created_at, updated_at
		FROM devices WHERE code = $1`
	var d entity.Device
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&d.ID, &d.Code, &d.Name, &d.SecretHash, &d.Role, &d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}
