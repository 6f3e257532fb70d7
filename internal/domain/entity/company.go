package entity

import "time"

// Tipos de código pendiente. El mismo campo de la empresa guarda el código de
// verificación de registro o el de recuperación de contraseña, nunca ambos a
// la vez; el Kind evita que un código emitido para un propósito se consuma en
// el otro.
type CodeKind string

const (
	CodeVerification CodeKind = "VERIFICACION"
	CodeRecovery     CodeKind = "RECUPERACION"
)

// PendingCode código de un solo uso pendiente de consumir (6 dígitos).
// Se sobrescribe completo en cada nueva solicitud.
type PendingCode struct {
	Kind     CodeKind
	Code     string
	IssuedAt time.Time
}

// Matches compara en igualdad exacta el código recibido contra el pendiente,
// exigiendo además el tipo esperado. Un PendingCode nil nunca coincide.
func (p *PendingCode) Matches(kind CodeKind, code string) bool {
	return p != nil && p.Kind == kind && p.Code == code
}

// Company representa una empresa/tenant del sistema. Cada empresa posee
// exactamente dos usuarios (ADMIN y VENDEDOR) creados durante el registro y
// un conjunto de teléfonos sin ciclo de vida propio.
type Company struct {
	ID              int64
	NombreUsuario   string  // handle único elegido por la empresa
	RUC             *string // RUC peruano, único cuando está presente
	RazonSocial     string
	NombreComercial string
	EmailContacto   string // único entre empresas
	Direccion       string
	LogoURL         string
	LogoKey         string // clave de borrado en el asset store
	Verificado      bool
	PendingCode     *PendingCode // nil cuando no hay código pendiente
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
