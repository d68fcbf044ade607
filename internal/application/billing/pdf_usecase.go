package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/repository"
)

// DocumentUseCase genera las representaciones descargables (PDF y XML) de una factura.
type DocumentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	issuer      Issuer
	pdf         InvoicePDFGenerator
	xml         InvoiceXMLExporter
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	issuer Issuer,
	pdf InvoicePDFGenerator,
	xml InvoiceXMLExporter,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		issuer:      issuer,
		pdf:         pdf,
		xml:         xml,
	}
}

func (uc *DocumentUseCase) document(ctx context.Context, invoiceID string) (InvoiceDocument, error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return InvoiceDocument{}, fmt.Errorf("documento: obtener factura: %w", err)
	}
	if inv == nil {
		return InvoiceDocument{}, domain.ErrNotFound
	}

	// ── 2. Cargar cliente (puede haber sido eliminado) ────────────────────────
	client, err := uc.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return InvoiceDocument{}, fmt.Errorf("documento: obtener cliente: %w", err)
	}
	return InvoiceDocument{Issuer: uc.issuer, Invoice: inv, Client: client}, nil
}

// DownloadInvoicePDF devuelve el PDF y el nombre de archivo sugerido.
func (uc *DocumentUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.document(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", doc.Invoice.InvoiceNumber), nil
}

// ExportInvoiceXML devuelve el XML y el nombre de archivo sugerido.
func (uc *DocumentUseCase) ExportInvoiceXML(ctx context.Context, invoiceID string) (xmlBytes []byte, filename string, err error) {
	doc, err := uc.document(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	xmlBytes, err = uc.xml.ExportInvoiceXML(doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml: exportación fallida: %w", err)
	}
	return xmlBytes, fmt.Sprintf("factura_%s.xml", doc.Invoice.InvoiceNumber), nil
}
