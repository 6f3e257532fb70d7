package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/auth"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	RucLookup RucLookup
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/verify", authHandler.Verify)
	authGroup.Post("/login", authHandler.Login)

	// Recuperación de contraseña (público, tres fases)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/verify-reset-code", authHandler.VerifyResetCode)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Perfil del token (protegido, requiere Bearer Token)
	authGroup.Get("/profile", AuthMiddleware(deps.JWTSecret), authHandler.Profile)

	// Consulta RUC para prellenado del registro (público)
	rucHandler := NewRucHandler(deps.RucLookup)
	api.Get("/sunat/ruc/:ruc", rucHandler.Lookup)
}
