package repository

import "github.com/easyrewardph/bayani/internal/domain/entity"

// DeviceRepository define el puerto de persistencia de dispositivos de escaneo.
type DeviceRepository interface {
	Create(device *entity.Device) error
	FindByCode(code string) (*entity.Device, error)
}
