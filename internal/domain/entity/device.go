package entity

import "time"

// Roles de dispositivo para el RBAC del API de escaneo.
const (
	DeviceRoleScanner    = "scanner"    // puede escanear y pedir snapshots
	DeviceRoleSupervisor = "supervisor" // además puede finalizar transferencias
)

// Device es una pistola/terminal de escaneo registrada. Se autentica con
// código + secreto (hash bcrypt) y recibe un JWT con su rol.
type Device struct {
	ID         string
	Code       string // identificador físico, ej. "HH-07"
	Name       string
	SecretHash string
	Role       string // scanner, supervisor
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
