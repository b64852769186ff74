// seed_products importa un catálogo de productos desde CSV (separador ';')
// y registra la existencia inicial de cada uno como entrada de mercancía.
//
// Uso: go run ./cmd/seed_products [-encoding cp1251|utf-8] catalogo.csv
// Columnas: barcode;name;unit_type;price;stock (stock opcional). La primera fila es encabezado.
// Los códigos de barras ya existentes se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/caja-api/internal/application/catalog"
	"github.com/jhoicas/caja-api/internal/application/dto"
	"github.com/jhoicas/caja-api/internal/application/inventory"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/infrastructure/cache"
	"github.com/jhoicas/caja-api/internal/infrastructure/postgres"
	"github.com/jhoicas/caja-api/pkg/config"
	"github.com/jhoicas/caja-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	encoding := flag.String("encoding", "cp1251", "codificación del archivo: cp1251 o utf-8")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: seed_products [-encoding cp1251|utf-8] catalogo.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseCatalog(f, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
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
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	receiveUC := inventory.NewReceiveStockUseCase(postgres.NewTxRunner(pool, cfg.DB.StatementTimeout), log)
	lookup := catalog.NewLookupService(productRepo, cache.NoopBarcodeCache{}, 0, log)
	productUC := catalog.NewProductUseCase(productRepo, lookup, receiveUC)

	var created, skipped, failed int
	for _, row := range rows {
		out, err := productUC.Create(ctx, "", row.req)
		switch {
		case err == nil && out.Warning != "":
			failed++
			log.Error().Int("line", row.line).Str("barcode", row.req.Barcode).Msg(out.Warning)
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			failed++
			log.Error().Err(err).Int("line", row.line).Str("barcode", row.req.Barcode).Msg("producto no importado")
		}
	}
	fmt.Printf("Importados %d productos, %d ya existían, %d con error\n", created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

type catalogRow struct {
	line int
	req  dto.CreateProductRequest
}

// parseCatalog decodifica el CSV a solicitudes de alta. Un error de formato en cualquier
// fila aborta la importación completa.
func parseCatalog(r io.Reader, encoding string) ([]catalogRow, error) {
	switch strings.ToLower(encoding) {
	case "cp1251", "windows-1251":
		r = transform.NewReader(r, charmap.Windows1251.NewDecoder())
	case "utf-8", "utf8":
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}

	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var rows []catalogRow
	for i, rec := range records {
		if i == 0 {
			continue // encabezado
		}
		line := i + 1
		if len(rec) < 4 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 4 columnas", line)
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[3])
		}
		req := dto.CreateProductRequest{
			Barcode:  strings.TrimSpace(rec[0]),
			Name:     strings.TrimSpace(rec[1]),
			UnitType: strings.ToLower(strings.TrimSpace(rec[2])),
			Price:    price,
		}
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			stock, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[4]), ",", "."))
			if err != nil {
				return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec[4])
			}
			req.InitialStock = &stock
		}
		rows = append(rows, catalogRow{line: line, req: req})
	}
	return rows, nil
}
