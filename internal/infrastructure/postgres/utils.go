package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/facturacion-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// uniqueViolationError traduce una violación 23505 al error de dominio del
// constraint afectado. Una carrera entre el chequeo previo y el INSERT debe
// reportarse igual que si la hubiera visto el chequeo.
func uniqueViolationError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "nombre_usuario"):
		return domain.ErrNombreUsuarioTaken
	case strings.Contains(pgErr.ConstraintName, "email_contacto"):
		return domain.ErrEmailContactoTaken
	case strings.Contains(pgErr.ConstraintName, "ruc"):
		return domain.ErrRUCTaken
	default:
		return domain.ErrNombreUsuarioTaken
	}
}
