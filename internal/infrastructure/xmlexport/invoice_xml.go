// Package xmlexport serializa facturas a XML con estructura inspirada en UBL 2.1
// (sin firma ni extensiones fiscales).
package xmlexport

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/application/billing"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// Namespaces UBL usados en el documento.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

var _ billing.InvoiceXMLExporter = (*InvoiceExporter)(nil)

// InvoiceExporter implementa billing.InvoiceXMLExporter con etree.
type InvoiceExporter struct{}

// NewInvoiceExporter construye el exportador.
func NewInvoiceExporter() *InvoiceExporter { return &InvoiceExporter{} }

// ExportInvoiceXML genera el documento indentado con declaración UTF-8.
func (e *InvoiceExporter) ExportInvoiceXML(doc billing.InvoiceDocument) ([]byte, error) {
	if doc.Invoice == nil {
		return nil, fmt.Errorf("xml: factura nil")
	}
	inv := doc.Invoice

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	cbc(root, "ID", inv.InvoiceNumber)
	cbc(root, "IssueDate", inv.IssueDate.Format("2006-01-02"))
	cbc(root, "DueDate", inv.DueDate.Format("2006-01-02"))
	if inv.Notes != "" {
		cbc(root, "Note", inv.Notes)
	}
	cbc(root, "StatusCode", inv.Status)
	ref := root.CreateElement("cac:OrderReference")
	cbc(ref, "ID", nonEmpty(inv.OrderNumber, inv.OrderID))

	supplier := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	party(supplier, doc.Issuer.Name, doc.Issuer.TaxID, doc.Issuer.Address, doc.Issuer.Phone, "")

	customer := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	if c := doc.Client; c != nil {
		party(customer, c.Name, c.TaxID, c.Address, c.Phone, c.Email)
	} else {
		party(customer, inv.ClientName, "", "", "", "")
	}

	for _, p := range inv.Payments {
		pm := root.CreateElement("cac:PrepaidPayment")
		cbc(pm, "ID", nonEmpty(p.Reference, p.ID))
		amount(pm, "PaidAmount", p.Amount)
		cbc(pm, "PaidDate", p.PaidAt.Format("2006-01-02"))
		cbc(pm, "InstructionID", p.Method)
	}

	taxTotal := root.CreateElement("cac:TaxTotal")
	amount(taxTotal, "TaxAmount", inv.Tax)

	totals := root.CreateElement("cac:LegalMonetaryTotal")
	amount(totals, "LineExtensionAmount", inv.Subtotal)
	amount(totals, "TaxInclusiveAmount", inv.Subtotal.Add(inv.Tax))
	amount(totals, "AllowanceTotalAmount", inv.Discount)
	amount(totals, "PrepaidAmount", inv.AmountPaid)
	amount(totals, "PayableAmount", inv.Total)
	amount(totals, "PayableRoundingAmount", inv.Balance)

	for i, it := range inv.Items {
		invoiceLine(root, i+1, it)
	}

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}

func invoiceLine(root *etree.Element, n int, it entity.InvoiceItem) {
	line := root.CreateElement("cac:InvoiceLine")
	cbc(line, "ID", strconv.Itoa(n))
	cbc(line, "InvoicedQuantity", strconv.Itoa(it.Quantity))
	amount(line, "LineExtensionAmount", it.Total)
	item := line.CreateElement("cac:Item")
	cbc(item, "Description", it.Description)
	if it.ProductID != "" {
		cbc(item.CreateElement("cac:SellersItemIdentification"), "ID", it.ProductID)
	}
	amount(line.CreateElement("cac:Price"), "PriceAmount", it.UnitPrice)
}

func party(p *etree.Element, name, taxID, address, phone, email string) {
	cbc(p.CreateElement("cac:PartyName"), "Name", name)
	if taxID != "" {
		cbc(p.CreateElement("cac:PartyTaxScheme"), "CompanyID", taxID)
	}
	if address != "" {
		cbc(p.CreateElement("cac:PostalAddress"), "StreetName", address)
	}
	if phone != "" || email != "" {
		contact := p.CreateElement("cac:Contact")
		if phone != "" {
			cbc(contact, "Telephone", phone)
		}
		if email != "" {
			cbc(contact, "ElectronicMail", email)
		}
	}
}

func cbc(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + tag)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, tag string, d decimal.Decimal) {
	cbc(parent, tag, d.StringFixed(2))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
