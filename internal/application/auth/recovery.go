package auth

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// RequestPasswordReset fase 1: localiza la empresa por su correo de contacto,
// genera un código nuevo que sobrescribe cualquier pendiente (verificada o
// no, da igual) y lo envía. Un fallo de envío NO se compensa: el código queda
// guardado y la empresa puede reintentar la solicitud.
//
// La respuesta distingue correo inexistente de envío exitoso; el cliente
// depende de ello para guiar el flujo.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) (int64, error) {
	if email == "" {
		return 0, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByEmailContacto(ctx, email)
	if err != nil {
		return 0, err
	}
	if company == nil {
		return 0, domain.ErrCompanyNotFound
	}
	codigo, err := generateCode()
	if err != nil {
		return 0, domain.ErrInternal
	}
	pending := &entity.PendingCode{Kind: entity.CodeRecovery, Code: codigo, IssuedAt: time.Now()}
	if err := uc.companyRepo.SetPendingCode(ctx, company.ID, pending); err != nil {
		return 0, err
	}
	if err := uc.notifier.Send(ctx, email, codigo, entity.CodeRecovery); err != nil {
		uc.log.Error().Err(err).Int64("empresa_id", company.ID).Msg("fallo al enviar correo de recuperación")
		return 0, domain.ErrCodeDelivery
	}
	return company.ID, nil
}

// VerifyResetCode fase 2: chequeo de solo lectura del código de recuperación,
// sin mutar nada. Permite al cliente confirmar el código antes de pedir la
// nueva contraseña.
func (uc *AuthUseCase) VerifyResetCode(ctx context.Context, empresaID int64, codigo string) error {
	company, err := uc.companyRepo.GetByID(ctx, empresaID)
	if err != nil {
		return err
	}
	if company == nil || !company.PendingCode.Matches(entity.CodeRecovery, codigo) {
		return domain.ErrInvalidCode
	}
	return nil
}

// ResetPassword fase 3: revalida el código (un cliente desfasado no puede
// saltarse la fase 2), resuelve el usuario del rol objetivo, reemplaza su
// hash y limpia el código para que no sirva para un segundo reset. Ambas
// mutaciones van en una sola transacción.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, empresaID int64, codigo string, targetRol entity.Rol, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, empresaID)
	if err != nil {
		return err
	}
	if company == nil || !company.PendingCode.Matches(entity.CodeRecovery, codigo) {
		return domain.ErrInvalidCode
	}
	user, err := uc.userRepo.GetByCompanyAndRol(ctx, empresaID, targetRol)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return domain.ErrInternal
	}
	return uc.tx.Run(ctx, func(
		companies repository.CompanyRepository,
		users repository.UserRepository,
		_ repository.PhoneRepository,
	) error {
		if err := users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}
		return companies.SetPendingCode(ctx, empresaID, nil)
	})
}
