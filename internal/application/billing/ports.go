package billing

import (
	"context"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con el repo de facturas.
type TxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// NumberGenerator genera el consecutivo INV-<n>.
type NumberGenerator interface {
	Next(prefix string) string
}

// Issuer datos del emisor impresos en PDF y XML.
type Issuer struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// InvoiceDocument todo lo necesario para renderizar una factura.
type InvoiceDocument struct {
	Issuer  Issuer
	Invoice *entity.Invoice
	Client  *entity.Client
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// InvoiceXMLExporter serializa la factura a XML.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(doc InvoiceDocument) ([]byte, error)
}
