package entity

import (
	"fmt"
	"strings"
	"time"
)

// Rol de usuario: enumeración cerrada. El registro crea exactamente un ADMIN
// y un VENDEDOR por empresa; no existen otros roles.
type Rol string

const (
	RolAdmin    Rol = "ADMIN"
	RolVendedor Rol = "VENDEDOR"
)

// ParseRol valida un rol recibido por la API.
func ParseRol(s string) (Rol, error) {
	switch Rol(strings.ToUpper(strings.TrimSpace(s))) {
	case RolAdmin:
		return RolAdmin, nil
	case RolVendedor:
		return RolVendedor, nil
	}
	return "", fmt.Errorf("rol inválido: %q", s)
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string // uuid
	CompanyID    int64
	Email        string // único global
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          Rol
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeriveUserEmails deriva los correos de los dos usuarios semilla a partir
// del handle de la empresa, normalizado a minúsculas y sin espacios extremos.
// Para el handle "acme" produce administrador@acme.com y vendedor@acme.com.
func DeriveUserEmails(nombreUsuario string) (admin, vendedor string) {
	handle := strings.ToLower(strings.TrimSpace(nombreUsuario))
	return "administrador@" + handle + ".com", "vendedor@" + handle + ".com"
}
