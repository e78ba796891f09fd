package csvexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

// ErrMissingSKUColumn el CSV no trae columna sku.
var ErrMissingSKUColumn = errors.New("csv: falta la columna sku")

// ReadImportRows lee un CSV con encabezado (name, sku, category, quantity, price, cost, supplier).
// Los nombres de columna no distinguen mayúsculas; las columnas desconocidas se ignoran.
func ReadImportRows(r io.Reader) ([]dto.ImportProductRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []dto.ImportProductRow{}, nil
		}
		return nil, fmt.Errorf("csv: encabezado: %w", err)
	}
	index := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	if _, ok := index["sku"]; !ok {
		return nil, ErrMissingSKUColumn
	}
	field := func(rec []string, name string) dto.FlexString {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return dto.FlexString(strings.TrimSpace(rec[i]))
	}

	rows := []dto.ImportProductRow{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, dto.ImportProductRow{
			Name:     field(rec, "name"),
			SKU:      field(rec, "sku"),
			Category: field(rec, "category"),
			Quantity: field(rec, "quantity"),
			Price:    field(rec, "price"),
			Cost:     field(rec, "cost"),
			Supplier: field(rec, "supplier"),
		})
	}
	return rows, nil
}
