package auth

import (
	"context"
	"regexp"
	"testing"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

func validRegisterInput() dto.RegisterCompanyRequest {
	return dto.RegisterCompanyRequest{
		NombreUsuario:    "acme",
		EmailContacto:    "contacto@acme.pe",
		PasswordAdmin:    "admin-secreta",
		PasswordVendedor: "vendedor-secreta",
		Telefonos:        []string{"987654321", "01-555-0199"},
	}
}

func TestRegister_CreaEmpresaConDosUsuariosSemilla(t *testing.T) {
	fx := newFixtures(t)

	id, err := fx.uc.Register(context.Background(), validRegisterInput(), logoReader(), "logo.png")
	require.NoError(t, err)
	require.NotZero(t, id)

	require.Len(t, fx.state.companies, 1)
	company := fx.state.companies[id]
	require.NotNil(t, company)
	assert.False(t, company.Verificado)
	require.NotNil(t, company.PendingCode)
	assert.Equal(t, entity.CodeVerification, company.PendingCode.Kind)
	assert.Regexp(t, codePattern, company.PendingCode.Code)

	// Exactamente dos usuarios, con emails derivados del handle en minúsculas.
	require.Len(t, fx.state.users, 2)
	var admin, vendedor *entity.User
	for _, u := range fx.state.users {
		switch u.Rol {
		case entity.RolAdmin:
			admin = u
		case entity.RolVendedor:
			vendedor = u
		}
	}
	require.NotNil(t, admin)
	require.NotNil(t, vendedor)
	assert.Equal(t, "administrador@acme.com", admin.Email)
	assert.Equal(t, "vendedor@acme.com", vendedor.Email)
	assert.Equal(t, id, admin.CompanyID)
	assert.Equal(t, id, vendedor.CompanyID)
	assert.NotEqual(t, "admin-secreta", admin.PasswordHash, "la contraseña nunca se persiste en claro")

	assert.Len(t, fx.state.phones[id], 2)

	// La notificación llevó el mismo código al correo de contacto.
	require.Len(t, fx.notifier.sent, 1)
	assert.Equal(t, "contacto@acme.pe", fx.notifier.sent[0].To)
	assert.Equal(t, company.PendingCode.Code, fx.notifier.sent[0].Code)
	assert.Equal(t, entity.CodeVerification, fx.notifier.sent[0].Kind)
}

func TestRegister_HandleConMayusculasYEspacios(t *testing.T) {
	fx := newFixtures(t)
	in := validRegisterInput()
	in.NombreUsuario = "  AcmePeru "

	id, err := fx.uc.Register(context.Background(), in, logoReader(), "logo.png")
	require.NoError(t, err)

	admin, err := (&fakeUserRepo{fx.state}).GetByCompanyAndRol(context.Background(), id, entity.RolAdmin)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "administrador@acmeperu.com", admin.Email)
}

func TestRegister_SinLogo(t *testing.T) {
	fx := newFixtures(t)

	_, err := fx.uc.Register(context.Background(), validRegisterInput(), nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fx.state.companies)
	assert.Empty(t, fx.assets.stored)
}

func TestRegister_CamposFaltantes_BorraLogoYaAlmacenado(t *testing.T) {
	fx := newFixtures(t)
	in := validRegisterInput()
	in.PasswordVendedor = ""

	_, err := fx.uc.Register(context.Background(), in, logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	// El asset store ya había aceptado el logo: debe quedar borrado.
	assert.Empty(t, fx.assets.stored)
	assert.Len(t, fx.assets.deleted, 1)
}

func TestRegister_RUCExigeRazonSocial(t *testing.T) {
	fx := newFixtures(t)
	in := validRegisterInput()
	in.RUC = "20123456789"
	in.RazonSocial = ""

	_, err := fx.uc.Register(context.Background(), in, logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fx.assets.stored)
}

func TestRegister_DuplicadosEnOrden(t *testing.T) {
	fx := newFixtures(t)
	first := validRegisterInput()
	first.RUC = "20123456789"
	first.RazonSocial = "Acme SAC"
	_, err := fx.uc.Register(context.Background(), first, logoReader(), "logo.png")
	require.NoError(t, err)

	// Mismo RUC y mismo handle: el RUC se chequea primero y corta.
	dup := validRegisterInput()
	dup.RUC = "20123456789"
	dup.RazonSocial = "Otra SAC"
	_, err = fx.uc.Register(context.Background(), dup, logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrRUCTaken)

	// Handle repetido sin RUC.
	dup2 := validRegisterInput()
	dup2.EmailContacto = "otra@acme.pe"
	_, err = fx.uc.Register(context.Background(), dup2, logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrNombreUsuarioTaken)

	// Email de contacto repetido con handle distinto.
	dup3 := validRegisterInput()
	dup3.NombreUsuario = "otra-empresa"
	_, err = fx.uc.Register(context.Background(), dup3, logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrEmailContactoTaken)

	// Cada intento fallido borró su logo; solo vive el del registro exitoso.
	assert.Len(t, fx.assets.stored, 1)
	assert.Len(t, fx.assets.deleted, 3)
	assert.Len(t, fx.state.companies, 1)
}

func TestRegister_FalloDeNotificacion_RollbackCompleto(t *testing.T) {
	fx := newFixtures(t)
	fx.notifier.fail = true

	_, err := fx.uc.Register(context.Background(), validRegisterInput(), logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrCodeDelivery)

	// Cero filas que referencien a la empresa intentada y logo borrado.
	assert.Empty(t, fx.state.companies)
	assert.Empty(t, fx.state.users)
	assert.Empty(t, fx.state.phones)
	assert.Empty(t, fx.assets.stored)
	assert.Len(t, fx.assets.deleted, 1)
}

func TestRegister_CarreraDeUnicidadEnInsert(t *testing.T) {
	// El chequeo previo pasa pero el INSERT pierde la carrera: misma clase de
	// error que si lo hubiera visto el chequeo, y el logo queda borrado.
	fx := newFixtures(t)
	fx.state.failCompanyCreate = domain.ErrNombreUsuarioTaken

	_, err := fx.uc.Register(context.Background(), validRegisterInput(), logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrNombreUsuarioTaken)
	assert.Empty(t, fx.state.companies)
	assert.Empty(t, fx.assets.stored)
}

func TestRegister_FalloDelAssetStore(t *testing.T) {
	fx := newFixtures(t)
	fx.assets.fail = true

	_, err := fx.uc.Register(context.Background(), validRegisterInput(), logoReader(), "logo.png")
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Empty(t, fx.state.companies)
}
