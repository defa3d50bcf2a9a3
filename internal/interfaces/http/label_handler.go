package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-print/internal/application/dto"
	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
)

// LabelHandler etiquetas de bultos de un pedido y edición de sus repartos (protegido).
type LabelHandler struct {
	uc    *printing.ExportUseCase
	print *PrintHandler
}

// NewLabelHandler construye el handler.
func NewLabelHandler(uc *printing.ExportUseCase) *LabelHandler {
	return &LabelHandler{uc: uc, print: NewPrintHandler(uc)}
}

func toAllocationResponse(v printing.AllocationView) dto.AllocationResponse {
	return dto.AllocationResponse{
		ItemKey: v.ItemKey, Title: v.Title, Total: v.Total,
		Count: v.Count, MaxPieces: v.MaxPieces, Pieces: v.Pieces,
	}
}

// Preview vista previa de etiquetas con el editor de bultos.
// GET /api/orders/:id/labels/preview
func (h *LabelHandler) Preview(c *fiber.Ctx) error {
	return h.print.preview(c, entity.KindLabels, c.Params("id"))
}

// Export PDF de etiquetas.
// GET /api/orders/:id/labels/export
func (h *LabelHandler) Export(c *fiber.Ctx) error {
	return h.print.export(c, entity.KindLabels, c.Params("id"))
}

// Print impresión directa de etiquetas.
// GET /api/orders/:id/labels/print
func (h *LabelHandler) Print(c *fiber.Ctx) error {
	return h.print.print(c, entity.KindLabels, c.Params("id"))
}

// List repartos actuales del pedido.
// GET /api/orders/:id/labels/allocations
func (h *LabelHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	views, err := h.uc.Allocations(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "pedido no encontrado")
	}
	out := make([]dto.AllocationResponse, len(views))
	for i, v := range views {
		out[i] = toAllocationResponse(v)
	}
	return c.JSON(out)
}

// SetCount cambia el número de bultos de una línea.
// PUT /api/orders/:id/labels/allocations/:itemKey/count
func (h *LabelHandler) SetCount(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.PackageCountRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	v, err := h.uc.SetPackageCount(c.Context(), companyID, c.Params("id"), c.Params("itemKey"), in.Count)
	if err != nil {
		return respondError(c, err, "pedido o línea no encontrados")
	}
	return c.JSON(toAllocationResponse(v))
}

// EditPieces edita las piezas de un bulto; la diferencia pasa al bulto siguiente.
// PUT /api/orders/:id/labels/allocations/:itemKey/pieces
func (h *LabelHandler) EditPieces(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.PackagePiecesRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	v, err := h.uc.EditPackagePieces(c.Context(), companyID, c.Params("id"), c.Params("itemKey"), *in.Index, in.Pieces)
	if err != nil {
		return respondError(c, err, "pedido o línea no encontrados")
	}
	return c.JSON(toAllocationResponse(v))
}

// Close persiste los repartos al cerrar el diálogo.
// POST /api/orders/:id/labels/allocations/close
func (h *LabelHandler) Close(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.CloseAllocations(c.Context(), companyID, c.Params("id")); err != nil {
		return respondError(c, err, "pedido no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
