package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/sunat"
)

// RucLookup puerto de consulta de RUC (la implementación real habla con la
// API de decolecta; los tests inyectan un fake).
type RucLookup interface {
	Lookup(ctx context.Context, ruc string) (*sunat.RucProfile, error)
}

// RucHandler expone la consulta de RUC para prellenar el registro.
type RucHandler struct {
	lookup RucLookup
}

// NewRucHandler construye el handler de consulta RUC.
func NewRucHandler(lookup RucLookup) *RucHandler {
	return &RucHandler{lookup: lookup}
}

// Lookup godoc
// @Summary      Consultar datos públicos de un RUC
// @Tags         sunat
// @Produce      json
// @Param        ruc  path  string  true  "RUC de 11 dígitos"
// @Success      200  {object}  sunat.RucProfile
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sunat/ruc/{ruc} [get]
func (h *RucHandler) Lookup(c *fiber.Ctx) error {
	ruc := c.Params("ruc")
	if len(ruc) != 11 {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "el RUC debe tener 11 dígitos")
	}
	profile, err := h.lookup.Lookup(c.UserContext(), ruc)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "DEPENDENCY", "no se pudo consultar el RUC")
	}
	if profile == nil {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "RUC no encontrado en el padrón")
	}
	return c.JSON(profile)
}
