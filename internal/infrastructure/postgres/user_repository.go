package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, email, password_hash, rol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash, string(user.Rol),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// El email de usuario se deriva del handle: un duplicado aquí es
			// una carrera sobre el mismo nombre de empresa.
			return domain.ErrNombreUsuarioTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail obtiene un usuario por email exacto.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, company_id, email, password_hash, rol, created_at, updated_at
		FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, email))
}

// GetByCompanyAndRol obtiene el usuario de una empresa con el rol dado
// (a lo sumo uno: el registro crea exactamente un usuario por rol).
func (r *UserRepo) GetByCompanyAndRol(ctx context.Context, companyID int64, rol entity.Rol) (*entity.User, error) {
	query := `
		SELECT id, company_id, email, password_hash, rol, created_at, updated_at
		FROM users WHERE company_id = $1 AND rol = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID, string(rol)))
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var rol string
	err := row.Scan(&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &rol, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Rol = entity.Rol(rol)
	return &u, nil
}

// UpdatePasswordHash reemplaza el hash de credencial de un usuario.
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update password: usuario %s no existe", id)
	}
	return nil
}

// DeleteByCompany elimina en bloque los usuarios de una empresa (rollback del registro).
func (r *UserRepo) DeleteByCompany(ctx context.Context, companyID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}
