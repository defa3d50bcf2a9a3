package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-print/internal/application/dto"
	"github.com/jhoicas/Inventario-print/internal/application/printing"
)

// SettingsHandler ajustes de rasterizado del usuario del token (protegido).
type SettingsHandler struct {
	svc *printing.SettingsService
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(svc *printing.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func toSettingsResponse(s printing.Settings) dto.RasterSettingsResponse {
	return dto.RasterSettingsResponse{Scale: s.Scale, Quality: s.Quality, Resolution: s.DPI()}
}

// Get GET /api/settings/raster
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	s, err := h.svc.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(toSettingsResponse(s))
}

// Put PUT /api/settings/raster
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RasterSettingsRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	s, err := h.svc.Save(c.Context(), userID, printing.Settings{Scale: in.Scale, Quality: in.Quality, Resolution: in.Resolution})
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(toSettingsResponse(s))
}
