package http

import (
	stdhttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Inventario-print/internal/application/printing"
)

// Roles que pueden editar los repartos de bultos.
var packagingRoles = []string{"admin", "bodeguero"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Export    *printing.ExportUseCase
	Settings  *printing.SettingsService
	Metrics   stdhttp.Handler // nil = sin /metrics
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Rutas protegidas (Bearer Token, o ?token= en páginas abiertas por el navegador)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Documentos: factura y confirmación de pedido
	printHandler := NewPrintHandler(deps.Export)
	documents := api.Group("/documents/:kind/:id")
	documents.Get("/preview", printHandler.Preview)
	documents.Get("/export", printHandler.Export)
	documents.Get("/print", printHandler.Print)
	documents.Get("/html", printHandler.Standalone)

	// Etiquetas de bultos de un pedido
	labelHandler := NewLabelHandler(deps.Export)
	labels := api.Group("/orders/:id/labels")
	labels.Get("/preview", labelHandler.Preview)
	labels.Get("/export", labelHandler.Export)
	labels.Get("/print", labelHandler.Print)
	labels.Get("/allocations", labelHandler.List)
	labels.Post("/allocations/close", labelHandler.Close)
	labels.Put("/allocations/:itemKey/count", RequireRole(packagingRoles...), labelHandler.SetCount)
	labels.Put("/allocations/:itemKey/pieces", RequireRole(packagingRoles...), labelHandler.EditPieces)

	// Ajustes de rasterizado por usuario
	settingsHandler := NewSettingsHandler(deps.Settings)
	api.Get("/settings/raster", settingsHandler.Get)
	api.Put("/settings/raster", settingsHandler.Put)
}
