// Package bootstrap arma el motor de impresión a partir de la configuración.
// Lo comparten el servidor HTTP y la CLI de exportación por lotes.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
	"github.com/jhoicas/Inventario-print/internal/domain/repository"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/archive"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/i18n"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/metrics"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/raster"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/render"
	"github.com/jhoicas/Inventario-print/internal/infrastructure/state"
	"github.com/jhoicas/Inventario-print/pkg/config"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// Engine casos de uso listos y recursos a liberar.
type Engine struct {
	Export   *printing.ExportUseCase
	Settings *printing.SettingsService
	Metrics  *metrics.Recorder

	closers []func() error
}

// Close libera navegador, Redis y pool de PostgreSQL en orden inverso de apertura.
func (e *Engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	return errors.Join(errs...)
}

// DefaultSettings ajustes de rasterizado por defecto desde la configuración.
func DefaultSettings(cfg config.PrintConfig) printing.Settings {
	return printing.Settings{
		Scale:      cfg.DefaultScale,
		Quality:    cfg.DefaultQuality,
		Resolution: cfg.DefaultResolution,
	}
}

// New conecta PostgreSQL, el almacén de estado, el archivo y Chrome.
// Si algo falla se cierra lo ya abierto.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *Engine, err error) {
	e := &Engine{Metrics: metrics.NewRecorder()}
	defer func() {
		if err != nil {
			_ = e.Close()
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	e.closers = append(e.closers, func() error { pool.Close(); return nil })

	store, closeStore, err := state.New(ctx, cfg.Redis, log.Component("state"))
	if err != nil {
		return nil, fmt.Errorf("almacén de estado: %w", err)
	}
	e.closers = append(e.closers, closeStore)

	arch, err := archive.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("archivo de PDFs: %w", err)
	}

	chrome := raster.NewChromeRasterizer(cfg.Chrome, log.Component("raster"))
	e.closers = append(e.closers, func() error { chrome.Close(); return nil })

	e.Settings = printing.NewSettingsService(store, DefaultSettings(cfg.Print), log.Component("settings"))
	e.Export, err = newExportUseCase(pool, store, arch, chrome, e.Settings, e.Metrics, log)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func newExportUseCase(
	pool *pgxpool.Pool,
	store repository.StateStore,
	arch archive.Archive,
	rasterizer printing.Rasterizer,
	settings *printing.SettingsService,
	rec *metrics.Recorder,
	log *logger.Logger,
) (*printing.ExportUseCase, error) {
	batch, err := render.NewBatchRenderer()
	if err != nil {
		return nil, fmt.Errorf("plantillas batch: %w", err)
	}
	preview, err := render.NewPreviewRenderer()
	if err != nil {
		return nil, fmt.Errorf("plantillas de vista previa: %w", err)
	}
	var archiveDest printing.Archive
	if arch != nil {
		archiveDest = arch
	}
	return printing.NewExportUseCase(printing.Dependencies{
		Documents:   postgres.NewDocumentRepository(pool),
		Settings:    settings,
		Allocations: printing.NewAllocationService(store, log.Component("allocations")),
		Pages:       batch,
		Preview:     preview,
		Pipeline:    printing.NewPipeline(rasterizer, raster.NewJPEGEncoder(), rec, log.Component("pipeline")),
		Assembler:   pdf.NewBitmapAssembler(time.Now),
		Vector:      pdf.NewMarotoPDFGenerator(),
		Archive:     archiveDest,
		ArchiveKey:  archive.Key,
		Metrics:     rec,
		Localizer:   func(country string) layout.Localizer { return i18n.ForCountry(country) },
		Log:         log.Component("export"),
	}), nil
}
