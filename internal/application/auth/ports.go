package auth

import (
	"context"
	"io"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// StoredAsset referencia a un archivo aceptado por el asset store: URL
// pública para servirlo y clave para borrarlo después.
type StoredAsset struct {
	URL       string
	DeleteKey string
}

// AssetStore define el puerto de almacenamiento del logo subido.
// Delete es idempotente: borrar una clave inexistente no es error.
type AssetStore interface {
	Store(ctx context.Context, r io.Reader, filename string) (*StoredAsset, error)
	Delete(ctx context.Context, deleteKey string) error
}

// Notifier define el puerto de entrega del código de un solo uso por correo.
// Debe fallar ruidosamente (sin tragarse errores) para que el flujo decida si
// compensa; un timeout se reporta igual que cualquier otro fallo de entrega.
type Notifier interface {
	Send(ctx context.Context, to, code string, kind entity.CodeKind) error
}

// Hasher define el puerto de hash unidireccional de contraseñas.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify retorna error si password no corresponde al hash.
	Verify(hash, password string) error
}

// TxRunner ejecuta un callback con repositorios atados a una misma
// transacción: o se confirman todas las filas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		users repository.UserRepository,
		phones repository.PhoneRepository,
	) error) error
}
