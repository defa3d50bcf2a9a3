// Package raster convierte páginas HTML de tamaño físico fijo en bitmaps:
// captura en Chrome headless (chromedp) y reescalado + JPEG con x/image.
package raster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/jhoicas/Inventario-print/internal/domain/layout"
	"github.com/jhoicas/Inventario-print/pkg/config"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// Options parámetros de una captura.
type Options struct {
	Scale      int // 1..5
	Resolution int // DPI; 0 = 96
}

// dpi resolución efectiva.
func (o Options) dpi() float64 {
	if o.Resolution <= 0 {
		return layout.BaseDPI
	}
	return float64(o.Resolution)
}

// DeviceScaleFactor factor de escala del dispositivo emulado: el contenedor mide
// la página en px CSS (96 DPI) y el bitmap sale a resolución × escala.
func DeviceScaleFactor(o Options) float64 {
	scale := o.Scale
	if scale < 1 {
		scale = 1
	}
	return float64(scale) * o.dpi() / layout.BaseDPI
}

// Viewport tamaño del contenedor fuera de pantalla en px CSS.
func Viewport(size layout.PageSize) (width, height int64) {
	w, h := size.Pixels(layout.BaseDPI, 1)
	return int64(w), int64(h)
}

// ChromeRasterizer captura cada página en una pestaña nueva de un navegador
// compartido. La pestaña se cierra antes de pasar a la siguiente página.
type ChromeRasterizer struct {
	cfg         config.ChromeConfig
	log         *logger.Logger
	mu          sync.Mutex
	alloc       context.Context
	cancelAlloc context.CancelFunc
	browserCtx  context.Context // cada página abre una pestaña hija de este contexto
	cancelTabs  context.CancelFunc
}

// NewChromeRasterizer prepara el allocator; el navegador arranca con la primera página.
func NewChromeRasterizer(cfg config.ChromeConfig, log *logger.Logger) *ChromeRasterizer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 30 * time.Second
	}
	alloc, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeRasterizer{cfg: cfg, log: log, alloc: alloc, cancelAlloc: cancel}
}

func (r *ChromeRasterizer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browserCtx != nil {
		return r.browserCtx, nil
	}
	ctx, cancel := chromedp.NewContext(r.alloc, chromedp.WithLogf(func(format string, args ...any) {
		r.log.Debug().Msgf(format, args...)
	}))
	// Run sin acciones arranca el navegador.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("arrancar Chrome: %w", err)
	}
	r.browserCtx, r.cancelTabs = ctx, cancel
	return ctx, nil
}

// Rasterize dibuja el HTML en un contenedor del tamaño físico exacto de la página
// y devuelve la captura PNG a resolución × escala.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, html []byte, size layout.PageSize, scale, resolution int) ([]byte, error) {
	o := Options{Scale: scale, Resolution: resolution}
	browserCtx, err := r.browser()
	if err != nil {
		return nil, err
	}
	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	tabCtx, cancel := context.WithTimeout(tabCtx, r.cfg.PageTimeout)
	defer cancel()
	// La cancelación del llamador también cierra la pestaña.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	width, height := Viewport(size)
	var (
		shot  []byte
		ready bool
	)
	err = chromedp.Run(tabCtx,
		emulation.SetDeviceMetricsOverride(width, height, DeviceScaleFactor(o), false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("section.page", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &ready, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{X: 0, Y: 0, Width: float64(width), Height: float64(height), Scale: 1}).
				WithFromSurface(true).
				Do(ctx)
			if err != nil {
				return err
			}
			shot = data
			return nil
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("capturar página %s: %w", size.Name, err)
	}
	if len(shot) == 0 {
		return nil, errors.New("captura vacía")
	}
	return shot, nil
}

// Close cierra el navegador y el allocator.
func (r *ChromeRasterizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browserCtx != nil {
		_ = chromedp.Cancel(r.browserCtx)
		r.cancelTabs()
		r.browserCtx = nil
	}
	r.cancelAlloc()
}
