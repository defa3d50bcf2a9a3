package entity

// Customer representa la contraparte del documento (cliente o destinatario).
// Country decide idioma, nota de IVA y nota de exportación.
type Customer struct {
	ID      string
	Name    string
	TaxID   string
	Address string
	City    string
	Country string
	Email   string
	Phone   string
}
