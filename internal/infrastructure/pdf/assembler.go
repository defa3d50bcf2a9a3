package pdf

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/Inventario-print/internal/domain/layout"
)

// ── Ensamblador de bitmaps ───────────────────────────────────────────────────

// BitmapAssembler arma un PDF con una página por bitmap JPEG, del mismo tamaño
// físico que la página maquetada.
type BitmapAssembler struct {
	now func() time.Time
}

// NewBitmapAssembler constructor. now fija la fecha de creación del PDF; nil = time.Now.
func NewBitmapAssembler(now func() time.Time) *BitmapAssembler {
	if now == nil {
		now = time.Now
	}
	return &BitmapAssembler{now: now}
}

// Assemble añade cada JPEG como una página nueva. La imagen ocupa el ancho de la
// página conservando la proporción; si resulta más alta que la página se acota a
// la altura y el ancho se recalcula.
func (a *BitmapAssembler) Assemble(title string, size layout.PageSize, jpegs [][]byte) ([]byte, error) {
	if len(jpegs) == 0 {
		return nil, fmt.Errorf("pdf: sin páginas")
	}
	orientation := "P"
	if size.Landscape() {
		orientation = "L"
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size: gofpdf.SizeType{
			Wd: math.Min(size.WidthMM, size.HeightMM),
			Ht: math.Max(size.WidthMM, size.HeightMM),
		},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(title, true)
	doc.SetCreationDate(a.now())
	doc.SetCompression(true)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	for i, img := range jpegs {
		doc.AddPage()
		name := fmt.Sprintf("page-%d", i+1)
		info := doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		if err := doc.Error(); err != nil {
			return nil, fmt.Errorf("pdf: página %d: %w", i+1, err)
		}
		w, h := FitImage(info.Width(), info.Height(), size)
		doc.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return buf.Bytes(), nil
}

// FitImage tamaño de dibujo (mm) de una imagen de proporción imgW:imgH en la página.
func FitImage(imgW, imgH float64, size layout.PageSize) (w, h float64) {
	if imgW <= 0 || imgH <= 0 {
		return size.WidthMM, size.HeightMM
	}
	w = size.WidthMM
	h = w * imgH / imgW
	if h > size.HeightMM {
		h = size.HeightMM
		w = h * imgW / imgH
	}
	return w, h
}
