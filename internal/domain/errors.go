package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; los mensajes visibles nunca exponen detalle
// interno ni errores crudos del driver.
var (
	// Validación de entrada (400).
	ErrInvalidInput = errors.New("entrada inválida")

	// Conflictos de unicidad (400, mismo trato que el chequeo previo).
	ErrNombreUsuarioTaken = errors.New("este nombre de empresa ya está registrado")
	ErrEmailContactoTaken = errors.New("ya existe una empresa registrada con este correo electrónico")
	ErrRUCTaken           = errors.New("este RUC ya está registrado")

	// No encontrado (404 o 401 según el flujo).
	ErrCompanyNotFound = errors.New("empresa no encontrada")
	ErrUserNotFound    = errors.New("usuario no encontrado")

	// Autenticación (401).
	ErrInvalidCredentials = errors.New("contraseña incorrecta")
	ErrCompanyNotVerified = errors.New("la cuenta de la empresa aún no ha sido verificada")

	// Código de un solo uso incorrecto, consumido o de otro propósito (400).
	ErrInvalidCode = errors.New("el código ingresado es incorrecto")

	// Fallo de un colaborador externo (500); en registro dispara compensación.
	ErrCodeDelivery = errors.New("no se pudo enviar el correo")

	ErrInternal = errors.New("error interno del servidor")
)
