package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrForbidden     = errors.New("acceso denegado")
	ErrUnsupported   = errors.New("tipo de documento no soportado")
	ErrRasterization = errors.New("fallo al rasterizar la página")
	ErrExportAborted = errors.New("exportación abortada")
)
