package auth

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// JWTConfig configuración para la emisión de la credencial de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de la cuenta de empresa: registro (saga con
// rollback compensatorio), verificación, login y recuperación de contraseña
// en tres fases.
type AuthUseCase struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	phoneRepo   repository.PhoneRepository
	tx          TxRunner
	assets      AssetStore
	notifier    Notifier
	hasher      Hasher
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso con todas sus dependencias
// inyectadas; no hay estado global.
func NewAuthUseCase(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	phoneRepo repository.PhoneRepository,
	tx TxRunner,
	assets AssetStore,
	notifier Notifier,
	hasher Hasher,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		phoneRepo:   phoneRepo,
		tx:          tx,
		assets:      assets,
		notifier:    notifier,
		hasher:      hasher,
		jwtCfg:      jwtCfg,
		log:         log,
	}
}

// Verify consume el código de verificación y activa la empresa. La empresa
// inexistente y el código incorrecto son errores distintos. La activación y
// la limpieza del código ocurren en un solo UPDATE.
func (uc *AuthUseCase) Verify(ctx context.Context, empresaID int64, codigo string) error {
	company, err := uc.companyRepo.GetByID(ctx, empresaID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrCompanyNotFound
	}
	if !company.PendingCode.Matches(entity.CodeVerification, codigo) {
		return domain.ErrInvalidCode
	}
	return uc.companyRepo.MarkVerified(ctx, empresaID)
}

// Login valida credenciales contra una empresa activada y emite la credencial
// de sesión (8 horas). Orden de chequeos: usuario inexistente, empresa sin
// verificar, contraseña incorrecta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrUserNotFound
	}
	if !company.Verificado {
		return nil, domain.ErrCompanyNotVerified
	}
	if err := uc.hasher.Verify(user.PasswordHash, in.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, string(user.Rol), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	ruc := ""
	if company.RUC != nil {
		ruc = *company.RUC
	}
	return &dto.LoginResponse{
		Message: "Login exitoso",
		Token:   token,
		User: dto.UserProfile{
			Email:         user.Email,
			Rol:           string(user.Rol),
			NombreUsuario: company.NombreUsuario,
			RUC:           ruc,
			RazonSocial:   company.RazonSocial,
			Logo:          company.LogoURL,
		},
	}, nil
}
