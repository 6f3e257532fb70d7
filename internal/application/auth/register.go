package auth

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// compensation deshace un recurso ya adquirido durante el registro.
type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// compensations lista de deshacer construida según se adquieren recursos;
// se ejecuta en orden inverso. Los fallos de limpieza se loguean y nunca
// sustituyen al error primario.
type compensations []compensation

func (cs compensations) run(ctx context.Context, uc *AuthUseCase) {
	for i := len(cs) - 1; i >= 0; i-- {
		if err := cs[i].undo(ctx); err != nil {
			uc.log.Warn().Err(err).Str("paso", cs[i].name).Msg("fallo al compensar registro")
		}
	}
}

// Register ejecuta el registro de una empresa: valida entrada, reserva
// unicidad, deriva los dos usuarios semilla, persiste todo en una transacción
// y envía el código de verificación FUERA de ella (el correo no debe retener
// una transacción abierta). Si el envío falla se deshace todo lo persistido y
// el logo almacenado (patrón saga). Devuelve el id de la nueva empresa.
//
// logo es el contenido del archivo subido; nil significa que no llegó logo.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterCompanyRequest, logo io.Reader, logoFilename string) (int64, error) {
	if logo == nil {
		return 0, domain.ErrInvalidInput
	}

	// El asset store acepta el archivo antes que cualquier otra validación
	// (igual que el pipeline de subida original): a partir de aquí todo fallo
	// debe borrar el logo ya almacenado.
	asset, err := uc.assets.Store(ctx, logo, logoFilename)
	if err != nil {
		return 0, domain.ErrInternal
	}
	undo := compensations{{name: "logo", undo: func(ctx context.Context) error {
		return uc.assets.Delete(ctx, asset.DeleteKey)
	}}}

	fail := func(e error) (int64, error) {
		undo.run(ctx, uc)
		return 0, e
	}

	if in.NombreUsuario == "" || in.EmailContacto == "" || in.PasswordAdmin == "" || in.PasswordVendedor == "" {
		return fail(domain.ErrInvalidInput)
	}
	ruc := strings.TrimSpace(in.RUC)
	if ruc != "" && in.RazonSocial == "" {
		// La variante con RUC exige razón social.
		return fail(domain.ErrInvalidInput)
	}

	// Chequeos de unicidad, en orden y con corte en la primera violación:
	// RUC, handle, email de contacto. La carrera entre el chequeo y el INSERT
	// la resuelve el constraint único de la DB (ver abajo).
	if ruc != "" {
		existing, err := uc.companyRepo.GetByRUC(ctx, ruc)
		if err != nil {
			return fail(domain.ErrInternal)
		}
		if existing != nil {
			return fail(domain.ErrRUCTaken)
		}
	}
	existing, err := uc.companyRepo.GetByNombreUsuario(ctx, in.NombreUsuario)
	if err != nil {
		return fail(domain.ErrInternal)
	}
	if existing != nil {
		return fail(domain.ErrNombreUsuarioTaken)
	}
	existing, err = uc.companyRepo.GetByEmailContacto(ctx, in.EmailContacto)
	if err != nil {
		return fail(domain.ErrInternal)
	}
	if existing != nil {
		return fail(domain.ErrEmailContactoTaken)
	}

	emailAdmin, emailVendedor := entity.DeriveUserEmails(in.NombreUsuario)
	hashAdmin, err := uc.hasher.Hash(in.PasswordAdmin)
	if err != nil {
		return fail(domain.ErrInternal)
	}
	hashVendedor, err := uc.hasher.Hash(in.PasswordVendedor)
	if err != nil {
		return fail(domain.ErrInternal)
	}
	codigo, err := generateCode()
	if err != nil {
		return fail(domain.ErrInternal)
	}

	now := time.Now()
	company := &entity.Company{
		NombreUsuario:   in.NombreUsuario,
		RazonSocial:     in.RazonSocial,
		NombreComercial: in.NombreComercial,
		EmailContacto:   in.EmailContacto,
		Direccion:       in.Direccion,
		LogoURL:         asset.URL,
		LogoKey:         asset.DeleteKey,
		Verificado:      false,
		PendingCode:     &entity.PendingCode{Kind: entity.CodeVerification, Code: codigo, IssuedAt: now},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if ruc != "" {
		company.RUC = &ruc
	}

	// Empresa + dos usuarios + teléfonos como unidad atómica: o existen todas
	// las filas o ninguna.
	err = uc.tx.Run(ctx, func(
		companies repository.CompanyRepository,
		users repository.UserRepository,
		phones repository.PhoneRepository,
	) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		seed := []*entity.User{
			{ID: uuid.New().String(), CompanyID: company.ID, Email: emailAdmin, PasswordHash: hashAdmin, Rol: entity.RolAdmin, CreatedAt: now, UpdatedAt: now},
			{ID: uuid.New().String(), CompanyID: company.ID, Email: emailVendedor, PasswordHash: hashVendedor, Rol: entity.RolVendedor, CreatedAt: now, UpdatedAt: now},
		}
		for _, u := range seed {
			if err := users.Create(ctx, u); err != nil {
				return err
			}
		}
		if len(in.Telefonos) > 0 {
			if _, err := phones.CreateBatch(ctx, company.ID, in.Telefonos); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Una violación de unicidad en el INSERT (carrera con otro registro)
		// se reporta igual que si la hubiera detectado el chequeo previo.
		switch err {
		case domain.ErrNombreUsuarioTaken, domain.ErrEmailContactoTaken, domain.ErrRUCTaken:
			return fail(err)
		}
		uc.log.Error().Err(err).Str("empresa", in.NombreUsuario).Msg("persistencia del registro")
		return fail(domain.ErrInternal)
	}

	// Filas confirmadas: desde aquí la compensación también las elimina, en
	// orden inverso a su creación (teléfonos, usuarios, empresa, logo).
	undo = append(undo,
		compensation{name: "empresa", undo: func(ctx context.Context) error {
			return uc.companyRepo.Delete(ctx, company.ID)
		}},
		compensation{name: "usuarios", undo: func(ctx context.Context) error {
			return uc.userRepo.DeleteByCompany(ctx, company.ID)
		}},
		compensation{name: "telefonos", undo: func(ctx context.Context) error {
			return uc.phoneRepo.DeleteByCompany(ctx, company.ID)
		}},
	)

	// Envío del código fuera de la transacción; el notifier aplica su propio
	// timeout y un fallo aquí dispara el rollback compensatorio completo.
	if err := uc.notifier.Send(ctx, in.EmailContacto, codigo, entity.CodeVerification); err != nil {
		uc.log.Error().Err(err).Int64("empresa_id", company.ID).Msg("fallo al enviar correo de verificación")
		return fail(domain.ErrCodeDelivery)
	}

	return company.ID, nil
}
