package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, nombre_usuario, ruc, razon_social, nombre_comercial,
	email_contacto, direccion, logo_url, logo_key, verificado,
	pending_code, pending_code_kind, pending_code_issued_at, created_at, updated_at`

// Create persiste una nueva empresa y asigna el ID generado por la DB.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (nombre_usuario, ruc, razon_social, nombre_comercial,
			email_contacto, direccion, logo_url, logo_key, verificado,
			pending_code, pending_code_kind, pending_code_issued_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	var kind, code *string
	var issuedAt *time.Time
	if c.PendingCode != nil {
		k := string(c.PendingCode.Kind)
		kind, code, issuedAt = &k, &c.PendingCode.Code, &c.PendingCode.IssuedAt
	}
	err := r.q.QueryRow(ctx, query,
		c.NombreUsuario, c.RUC, c.RazonSocial, c.NombreComercial,
		c.EmailContacto, c.Direccion, c.LogoURL, c.LogoKey, c.Verificado,
		code, kind, issuedAt, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if uerr := uniqueViolationError(err); uerr != nil {
			return uerr
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByNombreUsuario obtiene una empresa por su handle único.
func (r *CompanyRepo) GetByNombreUsuario(ctx context.Context, nombreUsuario string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE nombre_usuario = $1`, nombreUsuario)
}

// GetByEmailContacto obtiene una empresa por su correo de contacto.
func (r *CompanyRepo) GetByEmailContacto(ctx context.Context, email string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE email_contacto = $1`, email)
}

// GetByRUC obtiene una empresa por RUC.
func (r *CompanyRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE ruc = $1`, ruc)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	var code, kind *string
	var issuedAt *time.Time
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.NombreUsuario, &c.RUC, &c.RazonSocial, &c.NombreComercial,
		&c.EmailContacto, &c.Direccion, &c.LogoURL, &c.LogoKey, &c.Verificado,
		&code, &kind, &issuedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	if code != nil && kind != nil {
		c.PendingCode = &entity.PendingCode{Kind: entity.CodeKind(*kind), Code: *code}
		if issuedAt != nil {
			c.PendingCode.IssuedAt = *issuedAt
		}
	}
	return &c, nil
}

// SetPendingCode sobrescribe el código pendiente de la empresa; nil lo limpia.
func (r *CompanyRepo) SetPendingCode(ctx context.Context, id int64, pending *entity.PendingCode) error {
	var kind, code *string
	var issuedAt *time.Time
	if pending != nil {
		k := string(pending.Kind)
		kind, code, issuedAt = &k, &pending.Code, &pending.IssuedAt
	}
	query := `
		UPDATE companies
		SET pending_code = $2, pending_code_kind = $3, pending_code_issued_at = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, code, kind, issuedAt)
	if err != nil {
		return fmt.Errorf("set pending code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set pending code: empresa %d no existe", id)
	}
	return nil
}

// MarkVerified activa la empresa y limpia el código pendiente en un solo UPDATE.
func (r *CompanyRepo) MarkVerified(ctx context.Context, id int64) error {
	query := `
		UPDATE companies
		SET verificado = true, pending_code = NULL, pending_code_kind = NULL,
			pending_code_issued_at = NULL, updated_at = now()
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// Delete elimina la empresa (usado solo por el rollback del registro; las
// filas hijas se borran antes).
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
