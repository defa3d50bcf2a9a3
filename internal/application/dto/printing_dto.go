package dto

// ExportQuery parámetros de GET .../export.
type ExportQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=raster vector"`
}

// RasterSettingsRequest cuerpo de PUT /api/settings/raster.
type RasterSettingsRequest struct {
	Scale      int `json:"scale" validate:"required,min=1,max=5"`
	Quality    int `json:"quality" validate:"required,min=1,max=100"`
	Resolution int `json:"resolution" validate:"omitempty,min=72,max=600"`
}

// RasterSettingsResponse ajustes de rasterizado vigentes del usuario.
type RasterSettingsResponse struct {
	Scale      int `json:"scale"`
	Quality    int `json:"quality"`
	Resolution int `json:"resolution"`
}

// PackageCountRequest cuerpo de PUT .../allocations/:itemKey/count.
type PackageCountRequest struct {
	Count int `json:"count" validate:"required,min=1"`
}

// PackagePiecesRequest cuerpo de PUT .../allocations/:itemKey/pieces.
// Pieces fuera de rango se acota en el dominio; no se rechaza.
type PackagePiecesRequest struct {
	Index  *int `json:"index" validate:"required,min=0"`
	Pieces int  `json:"pieces"`
}

// AllocationResponse reparto de una línea.
type AllocationResponse struct {
	ItemKey   string `json:"item_key"`
	Title     string `json:"title"`
	Total     int    `json:"total"`
	Count     int    `json:"count"`
	MaxPieces int    `json:"max_pieces"`
	Pieces    []int  `json:"pieces"`
}
