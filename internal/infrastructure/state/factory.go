package state

import (
	"context"

	"github.com/jhoicas/Inventario-print/internal/domain/repository"
	"github.com/jhoicas/Inventario-print/pkg/config"
	"github.com/jhoicas/Inventario-print/pkg/logger"
)

// New elige el almacén según la configuración: Redis si hay REDIS_ADDR, memoria si no.
// El cierre devuelto libera la conexión (no-op en memoria).
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (repository.StateStore, func() error, error) {
	if cfg.Addr == "" {
		log.Warn().Msg("REDIS_ADDR vacío: estado de impresión en memoria (no se comparte entre instancias)")
		return NewMemoryStore(), func() error { return nil }, nil
	}
	store, err := NewRedisStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Addr).Msg("estado de impresión en Redis")
	return store, store.Close, nil
}
