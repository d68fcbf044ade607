package xmlexport_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/billing"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/xmlexport"
)

func sampleDocument() billing.InvoiceDocument {
	issued := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return billing.InvoiceDocument{
		Issuer: billing.Issuer{Name: "Lácteos El Prado", TaxID: "900123456"},
		Invoice: &entity.Invoice{
			InvoiceNumber: "INV-42",
			OrderNumber:   "ORD-7",
			IssueDate:     issued,
			DueDate:       issued.AddDate(0, 0, 30),
			Items: []entity.InvoiceItem{
				{ProductID: "p-1", Description: "Queso & crema", Quantity: 3, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(30)},
				{ProductID: "p-2", Description: "Yogur", Quantity: 1, UnitPrice: decimal.RequireFromString("2.5"), Total: decimal.RequireFromString("2.5")},
			},
			Subtotal:   decimal.RequireFromString("32.5"),
			Tax:        decimal.RequireFromString("6.5"),
			Total:      decimal.NewFromInt(39),
			AmountPaid: decimal.Zero,
			Balance:    decimal.NewFromInt(39),
			Status:     entity.InvoiceStatusSent,
		},
		Client: &entity.Client{Name: "Tienda La Vaca", TaxID: "800-1", Email: "compras@lavaca.co"},
	}
}

func TestExportInvoiceXML_Estructura(t *testing.T) {
	out, err := xmlexport.NewInvoiceExporter().ExportInvoiceXML(sampleDocument())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, xmlexport.NsInvoice, root.SelectAttrValue("xmlns", ""))

	assert.Equal(t, "INV-42", root.FindElement("cbc:ID").Text())
	assert.Equal(t, "2026-04-09", root.FindElement("cbc:DueDate").Text())
	assert.Equal(t, "ORD-7", root.FindElement("cac:OrderReference/cbc:ID").Text())
	assert.Equal(t, "Tienda La Vaca",
		root.FindElement("cac:AccountingCustomerParty/cac:Party/cac:PartyName/cbc:Name").Text())
	assert.Equal(t, "39.00", root.FindElement("cac:LegalMonetaryTotal/cbc:PayableAmount").Text())

	lines := root.FindElements("cac:InvoiceLine")
	require.Len(t, lines, 2)
	assert.Equal(t, "Queso & crema", lines[0].FindElement("cac:Item/cbc:Description").Text())
	assert.Equal(t, "2.50", lines[1].FindElement("cac:Price/cbc:PriceAmount").Text())
}

func TestExportInvoiceXML_SinCliente(t *testing.T) {
	d := sampleDocument()
	d.Client = nil
	d.Invoice.ClientName = "Cliente borrado"

	out, err := xmlexport.NewInvoiceExporter().ExportInvoiceXML(d)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Equal(t, "Cliente borrado",
		doc.Root().FindElement("cac:AccountingCustomerParty/cac:Party/cac:PartyName/cbc:Name").Text())
}

func TestExportInvoiceXML_SinFactura(t *testing.T) {
	_, err := xmlexport.NewInvoiceExporter().ExportInvoiceXML(billing.InvoiceDocument{})
	assert.Error(t, err)
}
