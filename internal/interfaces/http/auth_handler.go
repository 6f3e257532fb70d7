package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// Límite de tamaño del logo subido (igual que el pipeline original).
const maxLogoBytes = 5 * 1024 * 1024

// AuthHandler maneja registro, verificación, login y recuperación.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar empresa
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo  formData  file  true  "logo de la empresa"
// @Success      201   {object}  dto.RegisterCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("logo")
	if err != nil || fileHeader == nil {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "el logo de la empresa es obligatorio")
	}
	if fileHeader.Size > maxLogoBytes {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "el logo no puede superar 5MB")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "no se pudo leer el logo")
	}
	defer file.Close()

	in := dto.RegisterCompanyRequest{
		NombreUsuario:    c.FormValue("nombreUsuario"),
		EmailContacto:    c.FormValue("emailContacto"),
		PasswordAdmin:    c.FormValue("passwordAdmin"),
		PasswordVendedor: c.FormValue("passwordVendedor"),
		RUC:              c.FormValue("ruc"),
		RazonSocial:      c.FormValue("razonSocial"),
		NombreComercial:  c.FormValue("nombreComercial"),
		Direccion:        c.FormValue("direccion"),
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Telefonos = form.Value["telefonos"]
	}

	empresaID, err := h.uc.Register(c.UserContext(), in, file, fileHeader.Filename)
	if err != nil {
		return mapAuthError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterCompanyResponse{
		Message:   "Registro iniciado. Verifique su correo.",
		EmpresaID: empresaID,
	})
}

// Verify godoc
// @Summary      Verificar cuenta con código
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyRequest  true  "empresaId, codigo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.Verify(c.UserContext(), in.EmpresaID, in.Codigo); err != nil {
		return mapAuthError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Cuenta verificada correctamente"})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return mapAuthError(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitar código de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email de contacto"
// @Success      200   {object}  dto.ForgotPasswordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	empresaID, err := h.uc.RequestPasswordReset(c.UserContext(), in.Email)
	if err != nil {
		return mapAuthError(c, err)
	}
	return c.JSON(dto.ForgotPasswordResponse{Message: "Código enviado", EmpresaID: empresaID})
}

// VerifyResetCode godoc
// @Summary      Verificar código de recuperación (solo lectura)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyResetCodeRequest  true  "empresaId, codigo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-reset-code [post]
func (h *AuthHandler) VerifyResetCode(c *fiber.Ctx) error {
	var in dto.VerifyResetCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.VerifyResetCode(c.UserContext(), in.EmpresaID, in.Codigo); err != nil {
		return mapAuthError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Código válido"})
}

// ResetPassword godoc
// @Summary      Cambiar contraseña con código de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "empresaId, codigo, targetRol, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	rol, err := entity.ParseRol(in.TargetRol)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "targetRol debe ser ADMIN o VENDEDOR")
	}
	if err := h.uc.ResetPassword(c.UserContext(), in.EmpresaID, in.Codigo, rol, in.NewPassword); err != nil {
		return mapAuthError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña de " + string(rol) + " actualizada correctamente"})
}

// Profile devuelve los claims de la credencial de sesión (ruta protegida).
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"userId":    GetUserID(c),
		"empresaId": GetCompanyID(c),
		"rol":       GetRol(c),
	})
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// mapAuthError traduce errores de dominio a estados HTTP según la taxonomía:
// validación y conflictos 400, credenciales/cuenta sin verificar 401,
// no encontrado 404, dependencias e internos 500.
func mapAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "todos los campos son obligatorios")
	case errors.Is(err, domain.ErrNombreUsuarioTaken),
		errors.Is(err, domain.ErrEmailContactoTaken),
		errors.Is(err, domain.ErrRUCTaken):
		return respondError(c, fiber.StatusBadRequest, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrInvalidCode):
		return respondError(c, fiber.StatusBadRequest, "INVALID_CODE", err.Error())
	case errors.Is(err, domain.ErrCompanyNotFound):
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		// En login el usuario inexistente es 401 (no filtrar existencia);
		// en reset-password es un 404 explícito.
		if c.Path() == "/api/auth/login" {
			return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "usuario no encontrado")
		}
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrCompanyNotVerified):
		return respondError(c, fiber.StatusUnauthorized, "UNVERIFIED", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrCodeDelivery):
		return respondError(c, fiber.StatusInternalServerError, "DELIVERY", "no se pudo enviar el correo. Intenta de nuevo.")
	default:
		return respondError(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
	}
}
