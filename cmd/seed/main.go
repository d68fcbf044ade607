// seed importa el catálogo inicial (productos y clientes) desde CSV usando los mismos casos de
// uso que la API, de modo que se aplican las mismas validaciones y los duplicados se omiten.
//
// Uso: go run ./cmd/seed -products products.csv -clients clients.csv [-charset latin1]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/lacteos-api/internal/application/usecase"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lacteos-api/pkg/config"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

func main() {
	productsPath := flag.String("products", "", "CSV de productos (sku,name,description,category,unit,unit_price,current_stock,min_stock)")
	clientsPath := flag.String("clients", "", "CSV de clientes (name,type,contact_name,email,phone,address,city,tax_id)")
	charset := flag.String("charset", "utf8", "codificación de los CSV: utf8, latin1, windows-1252")
	flag.Parse()

	if *productsPath == "" && *clientsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	im := NewImporter(
		usecase.NewProductUseCase(postgres.NewProductRepository(pool), log),
		usecase.NewClientUseCase(postgres.NewClientRepository(pool)),
		log,
	)

	if *productsPath != "" {
		res, err := importFile(*productsPath, *charset, func(r io.Reader) (Result, error) { return im.ImportProducts(ctx, r) })
		if err != nil {
			log.Fatal().Err(err).Str("file", *productsPath).Msg("importar productos")
		}
		log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("productos importados")
	}
	if *clientsPath != "" {
		res, err := importFile(*clientsPath, *charset, func(r io.Reader) (Result, error) { return im.ImportClients(ctx, r) })
		if err != nil {
			log.Fatal().Err(err).Str("file", *clientsPath).Msg("importar clientes")
		}
		log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("clientes importados")
	}
}

func importFile(path, charset string, run func(io.Reader) (Result, error)) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	r, err := decodeReader(f, charset)
	if err != nil {
		return Result{}, err
	}
	return run(r)
}
