package http

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-print/internal/application/dto"
	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
)

// PrintHandler vista previa, exportación e impresión de documentos (protegido).
type PrintHandler struct {
	uc *printing.ExportUseCase
}

// NewPrintHandler construye el handler.
func NewPrintHandler(uc *printing.ExportUseCase) *PrintHandler {
	return &PrintHandler{uc: uc}
}

// withToken añade ?token= a los enlaces de páginas que abrirá el navegador.
func withToken(c *fiber.Ctx, path string, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	if tok := GetToken(c); tok != "" {
		q.Set("token", tok)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func documentPath(kind entity.DocumentKind, id, action string) string {
	if kind == entity.KindLabels {
		return fmt.Sprintf("/api/orders/%s/labels/%s", url.PathEscape(id), action)
	}
	return fmt.Sprintf("/api/documents/%s/%s/%s", kind, url.PathEscape(id), action)
}

// Preview vista previa interactiva.
// GET /api/documents/:kind/:id/preview
func (h *PrintHandler) Preview(c *fiber.Ctx) error {
	return h.preview(c, entity.DocumentKind(c.Params("kind")), c.Params("id"))
}

func (h *PrintHandler) preview(c *fiber.Ctx, kind entity.DocumentKind, id string) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	opts := printing.PreviewOptions{
		ExportURL: withToken(c, documentPath(kind, id, "export"), nil),
		PrintURL:  withToken(c, documentPath(kind, id, "print"), nil),
	}
	if kind == entity.KindLabels {
		opts.AllocationsURL = fmt.Sprintf("/api/orders/%s/labels/allocations", url.PathEscape(id))
	}
	var buf bytes.Buffer
	if err := h.uc.Preview(c.Context(), companyID, kind, id, &buf, opts); err != nil {
		return respondError(c, err, "documento no encontrado")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Export descarga el PDF (raster por defecto, vector con ?format=vector).
// GET /api/documents/:kind/:id/export
func (h *PrintHandler) Export(c *fiber.Ctx) error {
	return h.export(c, entity.DocumentKind(c.Params("kind")), c.Params("id"))
}

func (h *PrintHandler) export(c *fiber.Ctx, kind entity.DocumentKind, id string) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var q dto.ExportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	res, err := h.uc.Export(c.Context(), printing.ExportRequest{
		CompanyID: companyID, UserID: GetUserID(c), Kind: kind, ID: id, Format: q.Format,
	})
	if err != nil {
		return respondError(c, err, "documento no encontrado")
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	c.Set("X-Page-Count", fmt.Sprintf("%d", res.Pages))
	c.Type("pdf")
	return c.Send(res.PDF)
}

// Standalone descarga el documento completo como HTML autónomo.
// GET /api/documents/:kind/:id/html
func (h *PrintHandler) Standalone(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	html, name, err := h.uc.Standalone(c.Context(), companyID, entity.DocumentKind(c.Params("kind")), c.Params("id"))
	if err != nil {
		return respondError(c, err, "documento no encontrado")
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Type("html", "utf-8")
	return c.Send(html)
}

// Print página de impresión directa con los bitmaps rasterizados.
// GET /api/documents/:kind/:id/print
func (h *PrintHandler) Print(c *fiber.Ctx) error {
	return h.print(c, entity.DocumentKind(c.Params("kind")), c.Params("id"))
}

func (h *PrintHandler) print(c *fiber.Ctx, kind entity.DocumentKind, id string) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	html, err := h.uc.Print(c.Context(), printing.ExportRequest{
		CompanyID: companyID, UserID: GetUserID(c), Kind: kind, ID: id,
	})
	if err != nil {
		return respondError(c, err, "documento no encontrado")
	}
	c.Type("html", "utf-8")
	return c.Send(html)
}
