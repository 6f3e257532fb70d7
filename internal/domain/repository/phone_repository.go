package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// PhoneRepository define el puerto de persistencia para Phone.
type PhoneRepository interface {
	// CreateBatch inserta los teléfonos de una empresa en lote.
	CreateBatch(ctx context.Context, companyID int64, numeros []string) ([]*entity.Phone, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Phone, error)
	DeleteByCompany(ctx context.Context, companyID int64) error
}
