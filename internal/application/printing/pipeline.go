package printing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-print/internal/domain"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// Pipeline rasteriza páginas estrictamente en orden, una a la vez. Entre páginas
// comprueba el contexto; ante cualquier fallo descarta lo ya rasterizado.
type Pipeline struct {
	rasterizer Rasterizer
	encoder    Encoder
	metrics    Metrics
	log        *logger.Logger
}

// NewPipeline construye la tubería. metrics puede ser nil.
func NewPipeline(rasterizer Rasterizer, encoder Encoder, metrics Metrics, log *logger.Logger) *Pipeline {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Pipeline{rasterizer: rasterizer, encoder: encoder, metrics: metrics, log: log}
}

// Run devuelve un JPEG por página, en el orden recibido. Cada bitmap mide
// exactamente mm / 25.4 × resolución × escala.
func (p *Pipeline) Run(ctx context.Context, kind string, pages []HTMLPage, s Settings) ([][]byte, error) {
	out := make([][]byte, 0, len(pages))
	for _, pg := range pages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrExportAborted, err)
		}
		capture, err := p.rasterizer.Rasterize(ctx, pg.HTML, pg.Size, s.Scale, s.DPI())
		if err != nil {
			p.log.Error().Err(err).Str("kind", kind).Int("page", pg.Number).Msg("rasterizado fallido")
			return nil, fmt.Errorf("%w: página %d: %w", domain.ErrRasterization, pg.Number, err)
		}
		width, height := s.TargetPixels(pg.Size)
		jpg, err := p.encoder.Encode(capture, width, height, s.Quality)
		if err != nil {
			p.log.Error().Err(err).Str("kind", kind).Int("page", pg.Number).Msg("codificado fallido")
			return nil, fmt.Errorf("%w: página %d: %w", domain.ErrRasterization, pg.Number, err)
		}
		out = append(out, jpg)
		p.metrics.PageRasterized(kind)
	}
	return out, nil
}
