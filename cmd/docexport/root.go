package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-print/internal/application/printing"
	"github.com/jhoicas/Inventario-print/internal/bootstrap"
	"github.com/jhoicas/Inventario-print/internal/domain/entity"
	"github.com/jhoicas/Inventario-print/pkg/config"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

type options struct {
	company string
	user    string
	kind    string
	ids     []string
	format  string
	out     string
	html    bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "docexport",
		Short: "Exporta facturas, confirmaciones de pedido y etiquetas a PDF",
		Example: `  docexport --company 7c1e... --kind order_confirmation --ids OC-15,OC-16
  docexport --company 7c1e... --kind labels --ids OC-15 --format vector --out ./etiquetas`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !entity.DocumentKind(o.kind).Valid() {
				return fmt.Errorf("tipo desconocido %q (invoice, order_confirmation, labels)", o.kind)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: cmd.ErrOrStderr()})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine, err := bootstrap.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer engine.Close()

			return exportAll(ctx, engine.Export, o, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.company, "company", "", "empresa propietaria de los documentos")
	f.StringVar(&o.user, "user", "", "usuario cuyos ajustes de rasterizado se aplican (vacío = por defecto)")
	f.StringVar(&o.kind, "kind", string(entity.KindInvoice), "invoice | order_confirmation | labels")
	f.StringSliceVar(&o.ids, "ids", nil, "identificadores separados por coma")
	f.StringVar(&o.format, "format", printing.FormatRaster, "raster | vector")
	f.StringVarP(&o.out, "out", "o", ".", "directorio de salida")
	f.BoolVar(&o.html, "html", false, "escribe además el HTML autónomo de cada documento")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

type exporter interface {
	Export(ctx context.Context, req printing.ExportRequest) (*printing.ExportResult, error)
	Standalone(ctx context.Context, companyID string, kind entity.DocumentKind, id string) ([]byte, string, error)
}

// exportAll exporta en orden y continúa tras un fallo; devuelve los errores unidos.
// Cancelar el contexto detiene el lote.
func exportAll(ctx context.Context, x exporter, o options, w io.Writer) error {
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return fmt.Errorf("crear %s: %w", o.out, err)
	}
	var errs []error
	for _, id := range o.ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		res, err := x.Export(ctx, printing.ExportRequest{
			CompanyID: o.company, UserID: o.user,
			Kind: entity.DocumentKind(o.kind), ID: id, Format: o.format,
		})
		if err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", id, err)
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		path := filepath.Join(o.out, res.Filename)
		if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		fmt.Fprintf(w, "✓ %s → %s (%d págs.)\n", id, path, res.Pages)
		if o.html {
			if err := writeStandalone(ctx, x, o, id); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
			}
		}
	}
	return errors.Join(errs...)
}

func writeStandalone(ctx context.Context, x exporter, o options, id string) error {
	html, name, err := x.Standalone(ctx, o.company, entity.DocumentKind(o.kind), id)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(o.out, name), html, 0o644)
}
