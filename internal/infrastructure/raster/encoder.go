package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// JPEGEncoder reescala la captura al tamaño exacto de la página y la codifica en JPEG.
type JPEGEncoder struct{}

// NewJPEGEncoder constructor.
func NewJPEGEncoder() JPEGEncoder { return JPEGEncoder{} }

// Encode decodifica el PNG capturado, lo lleva a width×height px sobre fondo blanco
// y lo codifica con la calidad dada (1..100).
func (JPEGEncoder) Encode(capture []byte, width, height, quality int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: tamaño inválido %dx%d", width, height)
	}
	src, err := png.Decode(bytes.NewReader(capture))
	if err != nil {
		return nil, fmt.Errorf("raster: decodificar captura: %w", err)
	}
	dst := Fit(src, width, height)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, fmt.Errorf("raster: codificar jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit devuelve la imagen exactamente de width×height px. Las zonas transparentes
// quedan en blanco. Si el tamaño ya coincide sólo se aplana.
func Fit(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func clampQuality(q int) int {
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}
