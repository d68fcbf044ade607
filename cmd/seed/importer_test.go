package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/usecase"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
)

func newTestImporter() (*Importer, *memstore.Store) {
	store := memstore.New()
	return NewImporter(usecase.NewProductUseCase(store.Products, nil), usecase.NewClientUseCase(store.Clients), nil), store
}

const productsCSV = `sku,name,description,category,unit,unit_price,current_stock,min_stock
lch-1l,Leche entera 1L,,milk,liter,2.50,100,20
QSO-500,Queso campesino 500g,Fresco,cheese,unit,7.35,30,5
LCH-1L,Leche repetida,,milk,liter,2.60,5,1
YOG-1,Yogur,,yogurt,unit,no-es-precio,10,2
MNT-1,Mantequilla,,butter,barrel,4.00,10,2
`

func TestImportProducts_OmiteDuplicadosEInvalidos(t *testing.T) {
	im, store := newTestImporter()

	res, err := im.ImportProducts(context.Background(), strings.NewReader(productsCSV))
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2, Skipped: 1, Failed: 2}, res)

	p, err := store.Products.GetBySKU(context.Background(), "LCH-1L")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Leche entera 1L", p.Name)
	assert.Equal(t, 100, p.CurrentStock)
}

func TestImportProducts_SegundaCargaNoDuplica(t *testing.T) {
	im, _ := newTestImporter()
	ctx := context.Background()

	_, err := im.ImportProducts(ctx, strings.NewReader(productsCSV))
	require.NoError(t, err)
	res, err := im.ImportProducts(ctx, strings.NewReader(productsCSV))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 3, res.Skipped)
}

func TestImportClients_Latin1(t *testing.T) {
	im, _ := newTestImporter()
	ctx := context.Background()
	raw := "name,type,contact_name,email,phone,address,city,tax_id\n" +
		"Lácteos Ñuñoa,distributor,Ana,ana@nunoa.co,,,Bogotá,900123\n" +
		"Tienda Don José,retail,,,,,,\n" +
		"tienda don josé,retail,,,,,,\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(raw))
	require.NoError(t, err)

	r, err := decodeReader(bytes.NewReader(encoded), "latin1")
	require.NoError(t, err)
	res, err := im.ImportClients(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2, Skipped: 1}, res)

	list, err := im.clients.List(ctx, dto.ClientFilterRequest{Search: "Ñuñoa"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Lácteos Ñuñoa", list.Items[0].Name)
	assert.Equal(t, "Bogotá", list.Items[0].City)
}

func TestDecodeReader_CharsetDesconocido(t *testing.T) {
	_, err := decodeReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestImportClients_FilaInvalida(t *testing.T) {
	im, _ := newTestImporter()

	res, err := im.ImportClients(context.Background(), strings.NewReader("name,type\nSin tipo,marciano\n"))
	require.NoError(t, err)
	assert.Equal(t, Result{Failed: 1}, res)
}
