package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseProductsCSV_UTF8ConCabecera(t *testing.T) {
	in := "name;description;price;unit;initial_stock\n" +
		"Café molido;Bolsa 500g;12,50;UN;8\n" +
		"Azúcar;;3.10;KG;\n"

	rows, err := parseProductsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Café molido", rows[0].Name)
	assert.Equal(t, "12.5", rows[0].Price.String())
	assert.Equal(t, 8, rows[0].InitialStock)
	assert.Equal(t, "KG", rows[1].UnitMeasure)
	assert.Equal(t, 0, rows[1].InitialStock)
}

func TestParseProductsCSV_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Jabón;Pastilla;1,99;UN;4\n")
	require.NoError(t, err)

	rows, err := parseProductsCSV(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jabón", rows[0].Name)
}

func TestParseProductsCSV_Errores(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"columnas faltantes", "Clavo;caja;1\n"},
		{"precio inválido", "Clavo;caja;abc;UN;1\n"},
		{"stock inválido", "Clavo;caja;1;UN;x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProductsCSV(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}
