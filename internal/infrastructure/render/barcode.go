package render

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Tamaño del bitmap del código de barras; el CSS lo escala al ancho de la celda.
const (
	barcodeWidth  = 600
	barcodeHeight = 120
)

// BarcodeDataURI Code128 del valor como PNG embebido. Si el valor no se puede
// codificar devuelve una URI vacía y la etiqueta se imprime sin código.
func BarcodeDataURI(value string) template.URL {
	bc, err := code128.Encode(value)
	if err != nil {
		return ""
	}
	scaled, err := barcode.Scale(bc, barcodeWidth, barcodeHeight)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
}
