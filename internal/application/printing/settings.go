package printing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Inventario-print/internal/domain"
	"github.com/jhoicas/Inventario-print/internal/domain/layout"
	"github.com/jhoicas/Inventario-print/internal/domain/repository"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// Rangos admitidos de los ajustes de rasterizado.
const (
	MinScale      = 1
	MaxScale      = 5
	MinQuality    = 1
	MaxQuality    = 100
	MinResolution = 72
	MaxResolution = 600
)

// Settings ajustes de rasterizado de un usuario.
type Settings struct {
	Scale      int `json:"scale"`
	Quality    int `json:"quality"`
	Resolution int `json:"resolution"` // DPI; 0 = 96
}

// DPI resolución efectiva.
func (s Settings) DPI() int {
	if s.Resolution <= 0 {
		return int(layout.BaseDPI)
	}
	return s.Resolution
}

// TargetPixels tamaño exacto del bitmap de una página.
func (s Settings) TargetPixels(size layout.PageSize) (width, height int) {
	return size.Pixels(float64(s.DPI()), float64(s.Scale))
}

// Validate comprueba los rangos.
func (s Settings) Validate() error {
	if s.Scale < MinScale || s.Scale > MaxScale {
		return fmt.Errorf("%w: escala %d fuera de [%d, %d]", domain.ErrInvalidInput, s.Scale, MinScale, MaxScale)
	}
	if s.Quality < MinQuality || s.Quality > MaxQuality {
		return fmt.Errorf("%w: calidad %d fuera de [%d, %d]", domain.ErrInvalidInput, s.Quality, MinQuality, MaxQuality)
	}
	if s.Resolution != 0 && (s.Resolution < MinResolution || s.Resolution > MaxResolution) {
		return fmt.Errorf("%w: resolución %d fuera de [%d, %d]", domain.ErrInvalidInput, s.Resolution, MinResolution, MaxResolution)
	}
	return nil
}

// SettingsService carga y guarda los ajustes por usuario en el almacén de estado.
type SettingsService struct {
	store    repository.StateStore
	defaults Settings
	log      *logger.Logger
}

// NewSettingsService construye el servicio con los valores por defecto de la configuración.
func NewSettingsService(store repository.StateStore, defaults Settings, log *logger.Logger) *SettingsService {
	return &SettingsService{store: store, defaults: defaults, log: log}
}

func settingsKey(userID string) string { return "settings:raster:" + userID }

// Defaults valores por defecto.
func (s *SettingsService) Defaults() Settings { return s.defaults }

// Get devuelve los ajustes guardados. Sin ajustes, o si lo guardado no se puede
// leer o está fuera de rango, devuelve los valores por defecto.
func (s *SettingsService) Get(ctx context.Context, userID string) (Settings, error) {
	raw, err := s.store.Get(ctx, settingsKey(userID))
	if err != nil {
		return s.defaults, fmt.Errorf("settings: leer: %w", err)
	}
	if raw == nil {
		return s.defaults, nil
	}
	var out Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("ajustes de rasterizado corruptos; se usan los valores por defecto")
		return s.defaults, nil
	}
	if err := out.Validate(); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("ajustes de rasterizado inválidos; se usan los valores por defecto")
		return s.defaults, nil
	}
	return out, nil
}

// Save valida y guarda los ajustes.
func (s *SettingsService) Save(ctx context.Context, userID string, in Settings) (Settings, error) {
	if err := in.Validate(); err != nil {
		return Settings{}, err
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: serializar: %w", err)
	}
	if err := s.store.Set(ctx, settingsKey(userID), raw); err != nil {
		return Settings{}, fmt.Errorf("settings: guardar: %w", err)
	}
	return in, nil
}
