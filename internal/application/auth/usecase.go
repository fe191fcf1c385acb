package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/easyrewardph/bayani/internal/application/dto"
	"github.com/easyrewardph/bayani/internal/domain"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	"github.com/easyrewardph/bayani/internal/domain/repository"
	"github.com/easyrewardph/bayani/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de dispositivo.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación de terminales de escaneo: alta y login.
type AuthUseCase struct {
	deviceRepo repository.DeviceRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(deviceRepo repository.DeviceRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{deviceRepo: deviceRepo, jwtCfg: jwtCfg}
}

// RegisterDevice da de alta una terminal: hashea el secreto con bcrypt y
// persiste. ErrDuplicate si el código ya existe.
func (uc *AuthUseCase) RegisterDevice(in dto.RegisterDeviceRequest) (*dto.DeviceResponse, error) {
	if in.Code == "" || in.Secret == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.deviceRepo.FindByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.DeviceRoleScanner
	}
	if role != entity.DeviceRoleScanner && role != entity.DeviceRoleSupervisor {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	device := &entity.Device{
		ID:         uuid.New().String(),
		Code:       in.Code,
		Name:       in.Name,
		SecretHash: string(hash),
		Role:       role,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.deviceRepo.Create(device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// Login verifica código/secreto, genera JWT y retorna token + terminal.
func (uc *AuthUseCase) Login(in dto.DeviceLoginRequest) (*dto.LoginResponse, error) {
	device, err := uc.deviceRepo.FindByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(device.SecretHash), []byte(in.Secret)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !device.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, device.ID, device.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Device: *toDeviceResponse(device)}, nil
}

func toDeviceResponse(d *entity.Device) *dto.DeviceResponse {
	return &dto.DeviceResponse{ID: d.ID, Code: d.Code, Name: d.Name, Role: d.Role}
}
