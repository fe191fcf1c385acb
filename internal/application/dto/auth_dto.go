package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeviceLoginRequest credenciales de una terminal de escaneo.
type DeviceLoginRequest struct {
	Code   string `json:"code"`
	Secret string `json:"secret"`
}

// RegisterDeviceRequest alta de una terminal (solo supervisores).
type RegisterDeviceRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Secret string `json:"secret"`
	Role   string `json:"role"` // scanner | supervisor
}

// DeviceResponse representación pública de una terminal.
type DeviceResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// LoginResponse token emitido para la terminal.
type LoginResponse struct {
	Token  string         `json:"token"`
	Device DeviceResponse `json:"device"`
}
