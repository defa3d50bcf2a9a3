package repository

import "context"

// StateStore almacén clave-valor para estado serializado del motor
// (ajustes de rasterización por usuario y allocations de bultos por documento).
// Get devuelve (nil, nil) si la clave no existe.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
