package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/pkg/logger"
	"github.com/jhoicas/lacteos-api/pkg/validator"
)

// productRow columnas de products.csv.
type productRow struct {
	SKU          string `csv:"sku"`
	Name         string `csv:"name"`
	Description  string `csv:"description"`
	Category     string `csv:"category"`
	Unit         string `csv:"unit"`
	UnitPrice    string `csv:"unit_price"`
	CurrentStock int    `csv:"current_stock"`
	MinStock     int    `csv:"min_stock"`
}

// clientRow columnas de clients.csv.
type clientRow struct {
	Name        string `csv:"name"`
	Type        string `csv:"type"`
	ContactName string `csv:"contact_name"`
	Email       string `csv:"email"`
	Phone       string `csv:"phone"`
	Address     string `csv:"address"`
	City        string `csv:"city"`
	TaxID       string `csv:"tax_id"`
}

type productCreator interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

type clientCatalog interface {
	Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error)
	List(ctx context.Context, in dto.ClientFilterRequest) (*dto.ClientListResponse, error)
}

// Result conteo de una importación.
type Result struct {
	Created int
	Skipped int
	Failed  int
}

// decodeReader aplica el charset de origen. utf8 (o vacío) no transforma.
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// Importer carga el catálogo inicial por los mismos casos de uso que la API.
type Importer struct {
	products productCreator
	clients  clientCatalog
	log      *logger.Logger
}

func NewImporter(products productCreator, clients clientCatalog, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{products: products, clients: clients, log: log.Component("seed")}
}

// ImportProducts crea un producto por fila; los SKU existentes se omiten.
func (im *Importer) ImportProducts(ctx context.Context, r io.Reader) (Result, error) {
	var rows []productRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return Result{}, fmt.Errorf("leer products csv: %w", err)
	}
	var res Result
	for i, row := range rows {
		line := i + 2 // encabezado en la línea 1
		price, err := decimal.NewFromString(strings.TrimSpace(row.UnitPrice))
		if err != nil {
			im.log.Warn().Int("line", line).Str("sku", row.SKU).Msg("unit_price inválido")
			res.Failed++
			continue
		}
		in := dto.CreateProductRequest{
			SKU:          strings.TrimSpace(row.SKU),
			Name:         strings.TrimSpace(row.Name),
			Description:  strings.TrimSpace(row.Description),
			Category:     strings.ToLower(strings.TrimSpace(row.Category)),
			Unit:         strings.ToLower(strings.TrimSpace(row.Unit)),
			UnitPrice:    price,
			CurrentStock: row.CurrentStock,
			MinStock:     row.MinStock,
		}
		if errs := validator.ValidateStruct(in); len(errs) > 0 {
			im.log.Warn().Int("line", line).Str("sku", row.SKU).Interface("errors", errs).Msg("fila de producto inválida")
			res.Failed++
			continue
		}
		_, err = im.products.Create(ctx, in)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("línea %d (%s): %w", line, in.SKU, err)
		default:
			res.Created++
		}
	}
	return res, nil
}

// ImportClients crea un cliente por fila. Se omite si ya existe un cliente con el mismo nombre
// (o con el mismo NIT entre los que coinciden por nombre).
func (im *Importer) ImportClients(ctx context.Context, r io.Reader) (Result, error) {
	var rows []clientRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return Result{}, fmt.Errorf("leer clients csv: %w", err)
	}
	var res Result
	for i, row := range rows {
		line := i + 2
		in := dto.CreateClientRequest{
			Name:        strings.TrimSpace(row.Name),
			Type:        strings.ToLower(strings.TrimSpace(row.Type)),
			ContactName: strings.TrimSpace(row.ContactName),
			Email:       strings.TrimSpace(row.Email),
			Phone:       strings.TrimSpace(row.Phone),
			Address:     strings.TrimSpace(row.Address),
			City:        strings.TrimSpace(row.City),
			TaxID:       strings.TrimSpace(row.TaxID),
		}
		if errs := validator.ValidateStruct(in); len(errs) > 0 {
			im.log.Warn().Int("line", line).Str("name", row.Name).Interface("errors", errs).Msg("fila de cliente inválida")
			res.Failed++
			continue
		}
		exists, err := im.clientExists(ctx, in)
		if err != nil {
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
		if exists {
			res.Skipped++
			continue
		}
		if _, err := im.clients.Create(ctx, in); err != nil {
			return res, fmt.Errorf("línea %d (%s): %w", line, in.Name, err)
		}
		res.Created++
	}
	return res, nil
}

func (im *Importer) clientExists(ctx context.Context, in dto.CreateClientRequest) (bool, error) {
	found, err := im.clients.List(ctx, dto.ClientFilterRequest{PageRequest: dto.PageRequest{Limit: 100}, Search: in.Name})
	if err != nil {
		return false, err
	}
	for _, c := range found.Items {
		if strings.EqualFold(c.Name, in.Name) || (in.TaxID != "" && c.TaxID == in.TaxID) {
			return true, nil
		}
	}
	return false, nil
}
