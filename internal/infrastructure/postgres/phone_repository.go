package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.PhoneRepository = (*PhoneRepo)(nil)

// PhoneRepo implementación del puerto PhoneRepository sobre PostgreSQL.
type PhoneRepo struct {
	q Querier
}

// NewPhoneRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPhoneRepository(q Querier) *PhoneRepo {
	return &PhoneRepo{q: q}
}

// CreateBatch inserta los teléfonos de una empresa en lote.
func (r *PhoneRepo) CreateBatch(ctx context.Context, companyID int64, numeros []string) ([]*entity.Phone, error) {
	created := make([]*entity.Phone, 0, len(numeros))
	for _, numero := range numeros {
		var p entity.Phone
		err := r.q.QueryRow(ctx,
			`INSERT INTO phones (company_id, numero) VALUES ($1, $2) RETURNING id`,
			companyID, numero,
		).Scan(&p.ID)
		if err != nil {
			return nil, fmt.Errorf("insert phone: %w", err)
		}
		p.CompanyID = companyID
		p.Numero = numero
		created = append(created, &p)
	}
	return created, nil
}

// ListByCompany lista los teléfonos de una empresa.
func (r *PhoneRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Phone, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, numero FROM phones WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list phones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Phone
	for rows.Next() {
		var p entity.Phone
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Numero); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteByCompany elimina en bloque los teléfonos de una empresa.
func (r *PhoneRepo) DeleteByCompany(ctx context.Context, companyID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM phones WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete phones: %w", err)
	}
	return nil
}
