package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create persiste la empresa y asigna su ID.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	GetByNombreUsuario(ctx context.Context, nombreUsuario string) (*entity.Company, error)
	GetByEmailContacto(ctx context.Context, email string) (*entity.Company, error)
	GetByRUC(ctx context.Context, ruc string) (*entity.Company, error)
	// SetPendingCode sobrescribe el código pendiente (nil lo limpia).
	SetPendingCode(ctx context.Context, id int64, code *entity.PendingCode) error
	// MarkVerified marca la empresa como verificada y limpia el código, en un solo UPDATE.
	MarkVerified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
