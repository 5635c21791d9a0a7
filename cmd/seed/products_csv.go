package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
)

// decodeLegacy devuelve data como UTF-8. Si no es UTF-8 válido se asume Windows-1252,
// que cubre ISO-8859-1 en el rango imprimible (planillas exportadas desde Excel).
func decodeLegacy(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return data, nil
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()))
}

// parseProductsCSV lee filas name;description;price;unit;initial_stock. La cabecera es opcional.
// Precio acepta coma decimal ("12,50").
func parseProductsCSV(r io.Reader) ([]dto.CreateProductRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err := decodeLegacy(raw)
	if err != nil {
		return nil, fmt.Errorf("decodificar CSV: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.CreateProductRequest
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("línea %d: se esperaban 5 columnas, hay %d", line, len(rec))
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[2])
		}
		stock := 0
		if s := strings.TrimSpace(rec[4]); s != "" {
			stock, err = strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("línea %d: stock inicial inválido %q", line, rec[4])
			}
		}
		out = append(out, dto.CreateProductRequest{
			Name:         strings.TrimSpace(rec[0]),
			Description:  strings.TrimSpace(rec[1]),
			Price:        price,
			UnitMeasure:  strings.TrimSpace(rec[3]),
			InitialStock: stock,
		})
	}
	return out, nil
}
