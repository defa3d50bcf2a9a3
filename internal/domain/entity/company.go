package entity

// Company representa la empresa emisora (membrete del documento impreso).
type Company struct {
	ID          string
	Name        string // razón social
	NIT         string
	Address     string
	City        string
	Country     string
	Phone       string
	Email       string
	LogoURL     string
	Signatory   string // persona que firma los documentos
	BankAccount string // cuenta para el pie de página de la factura
}
