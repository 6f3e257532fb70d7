package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByCompanyAndRol(ctx context.Context, companyID int64, rol entity.Rol) (*entity.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	DeleteByCompany(ctx context.Context, companyID int64) error
}
