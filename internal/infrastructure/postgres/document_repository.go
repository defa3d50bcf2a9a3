package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-print/internal/domain/entity"
	"github.com/jhoicas/Inventario-print/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo lee documentos imprimibles (cabecera, empresa, contraparte y líneas).
// Las etiquetas no tienen tabla propia: se leen desde la confirmación de pedido.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentHeaderQuery = `
	SELECT d.id, d.company_id, d.number, d.issue_date, d.due_date, d.shipping_date,
	       d.currency, d.vat_rate, d.notes, d.gross_weight, d.package_count,
	       c.id, c.name, c.nit, c.address, c.city, c.country, c.phone, c.email,
	       c.logo_url, c.signatory, c.bank_account,
	       cu.id, cu.name, cu.tax_id, cu.address, cu.city, cu.country, cu.email, cu.phone
	FROM print_documents d
	JOIN companies c ON c.id = d.company_id
	JOIN customers cu ON cu.id = d.customer_id
	WHERE d.id = $1 AND d.kind = $2`

const documentItemsQuery = `
	SELECT i.id, i.position, i.description, i.quantity, i.unit_price,
	       p.id, p.sku, p.name, p.unit_measure, p.unit_weight, p.pieces_per_package
	FROM print_document_items i
	LEFT JOIN products p ON p.id = i.product_id
	WHERE i.document_id = $1
	ORDER BY i.position, i.id`

// GetDocument carga el documento y construye sus totales. Devuelve (nil, nil) si no existe.
func (r *DocumentRepo) GetDocument(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	storedKind := kind
	if kind == entity.KindLabels {
		storedKind = entity.KindOrderConfirmation
	}

	var (
		h                        entity.DocumentHeader
		company                  entity.Company
		customer                 entity.Customer
		dueDate, shippingDate    *time.Time
		notes                    *string
		grossWeight              decimal.NullDecimal
		packageCount             *int32
		cNIT, cAddr, cCity       *string
		cCountry, cPhone, cEmail *string
		cLogo, cSign, cBank      *string
		cuTax, cuAddr, cuCity    *string
		cuCountry, cuEmail       *string
		cuPhone                  *string
	)
	err := r.q.QueryRow(ctx, documentHeaderQuery, id, string(storedKind)).Scan(
		&h.ID, &h.CompanyID, &h.Number, &h.IssueDate, &dueDate, &shippingDate,
		&h.Currency, &h.VATRate, &notes, &grossWeight, &packageCount,
		&company.ID, &company.Name, &cNIT, &cAddr, &cCity, &cCountry, &cPhone, &cEmail,
		&cLogo, &cSign, &cBank,
		&customer.ID, &customer.Name, &cuTax, &cuAddr, &cuCity, &cuCountry, &cuEmail, &cuPhone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	h.Kind = kind
	h.Notes = str(notes)
	if dueDate != nil {
		h.DueDate = *dueDate
	}
	if shippingDate != nil {
		h.ShippingDate = *shippingDate
	}
	if grossWeight.Valid {
		h.GrossWeight = grossWeight.Decimal
	}
	if packageCount != nil {
		h.PackageCount = int(*packageCount)
	}
	company.NIT, company.Address, company.City = str(cNIT), str(cAddr), str(cCity)
	company.Country, company.Phone, company.Email = str(cCountry), str(cPhone), str(cEmail)
	company.LogoURL, company.Signatory, company.BankAccount = str(cLogo), str(cSign), str(cBank)
	customer.TaxID, customer.Address, customer.City = str(cuTax), str(cuAddr), str(cuCity)
	customer.Country, customer.Email, customer.Phone = str(cuCountry), str(cuEmail), str(cuPhone)

	items, err := r.items(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	return entity.NewDocument(h, company, customer, items), nil
}

func (r *DocumentRepo) items(ctx context.Context, documentID string) ([]entity.LineItem, error) {
	rows, err := r.q.Query(ctx, documentItemsQuery, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var (
			key, description  string
			position, quantity int32
			unitPrice         decimal.Decimal
			pID, pSKU, pName  *string
			pUnit             *string
			pWeight           decimal.NullDecimal
			pPiecesPerPackage *int32
		)
		if err := rows.Scan(&key, &position, &description, &quantity, &unitPrice,
			&pID, &pSKU, &pName, &pUnit, &pWeight, &pPiecesPerPackage); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		var product *entity.Product
		if pID != nil {
			product = &entity.Product{
				ID:          *pID,
				PartNumber:  str(pSKU),
				Name:        str(pName),
				UnitMeasure: str(pUnit),
			}
			if pWeight.Valid {
				product.UnitWeight = pWeight.Decimal
			}
			if pPiecesPerPackage != nil {
				product.PiecesPerPackage = int(*pPiecesPerPackage)
			}
		}
		items = append(items, entity.NewLineItem(key, int(position), description, int(quantity), unitPrice, product))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document items: %w", err)
	}
	return items, nil
}
