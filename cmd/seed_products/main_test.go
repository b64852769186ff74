package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_UTF8(t *testing.T) {
	in := "barcode;name;unit_type;price;stock\n" +
		"7791;Arroz 1kg;piece;1200,50;24\n" +
		"7792;Queso;WEIGHT;8.75;\n"

	rows, err := parseCatalog(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].line)
	assert.Equal(t, "Arroz 1kg", rows[0].req.Name)
	assert.True(t, rows[0].req.Price.Equal(decimal.RequireFromString("1200.50")))
	require.NotNil(t, rows[0].req.InitialStock)
	assert.True(t, rows[0].req.InitialStock.Equal(decimal.NewFromInt(24)))

	assert.Equal(t, "weight", rows[1].req.UnitType)
	assert.Nil(t, rows[1].req.InitialStock, "stock vacío = sin existencia inicial")
}

func TestParseCatalog_CP1251(t *testing.T) {
	raw, err := charmap.Windows1251.NewEncoder().String("barcode;name;unit_type;price\n4601;Молоко;piece;89\n")
	require.NoError(t, err)

	rows, err := parseCatalog(bytes.NewReader([]byte(raw)), "cp1251")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Молоко", rows[0].req.Name)
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("h\n1;x;piece;abc\n"), "utf-8")
	assert.ErrorContains(t, err, "precio inválido")

	_, err = parseCatalog(strings.NewReader("h\n1;x\n"), "utf-8")
	assert.ErrorContains(t, err, "4 columnas")

	_, err = parseCatalog(strings.NewReader(""), "latin9")
	assert.ErrorContains(t, err, "codificación no soportada")
}
