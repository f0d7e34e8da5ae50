// Package importer loads catalog spreadsheets into the catalog.
//
// Each sheet is named after a variant ("laptop" or "laptops"). Its first row
// holds the JSON field names of that variant; an optional "category" column
// carries a category slug and defaults to the plural of the variant. A missing
// slug is derived from the name.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"github.com/ikkim/gadgetshop-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

const categoryColumn = "category"

type Entry struct {
	Sheet    string
	Row      int // 1-based, as shown by spreadsheet tools
	Variant  string
	Category string
	Product  model.Product
}

type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

type Importer struct {
	catalog service.CatalogService
}

func New(catalog service.CatalogService) *Importer {
	return &Importer{catalog: catalog}
}

// Read parses every variant sheet of the workbook. Rows that cannot be decoded
// are returned as RowErrors; sheets that name no variant are skipped.
func (im *Importer) Read(r io.Reader) ([]Entry, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var entries []Entry
	var rowErrors []RowError

	for _, sheet := range f.GetSheetList() {
		variant, ok := im.variantFor(sheet)
		if !ok {
			logger.Warn("Skipping sheet without a product variant", map[string]interface{}{
				"sheet": sheet,
			})
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}

		header := make([]string, len(rows[0]))
		for i, name := range rows[0] {
			header[i] = strings.ToLower(strings.TrimSpace(name))
		}

		for i, row := range rows[1:] {
			line := i + 2
			if blank(row) {
				continue
			}
			entry, err := im.decodeRow(variant, header, row)
			if err != nil {
				rowErrors = append(rowErrors, RowError{Sheet: sheet, Row: line, Err: err})
				continue
			}
			entry.Sheet, entry.Row = sheet, line
			entries = append(entries, entry)
		}
	}

	logger.Info("Catalog workbook read", map[string]interface{}{
		"entries": len(entries),
		"errors":  len(rowErrors),
	})
	return entries, rowErrors, nil
}

// Import creates every entry through the catalog service and reports the rows
// it rejected.
func (im *Importer) Import(entries []Entry) (int, []RowError) {
	categories := make(map[string]uint)
	created := 0
	var failed []RowError

	for _, entry := range entries {
		categoryID, ok := categories[entry.Category]
		if !ok {
			category, err := im.catalog.GetCategoryBySlug(entry.Category)
			if err != nil {
				failed = append(failed, RowError{Sheet: entry.Sheet, Row: entry.Row, Err: err})
				continue
			}
			categoryID = category.ID
			categories[entry.Category] = categoryID
		}
		entry.Product.Common().CategoryID = categoryID

		if _, err := im.catalog.CreateProduct(entry.Variant, entry.Product); err != nil {
			failed = append(failed, RowError{Sheet: entry.Sheet, Row: entry.Row, Err: err})
			continue
		}
		created++
	}

	logger.Info("Catalog import finished", map[string]interface{}{
		"created": created,
		"failed":  len(failed),
	})
	return created, failed
}

func (im *Importer) variantFor(sheet string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(sheet))
	for _, variant := range im.catalog.Variants() {
		if name == variant || name == variant+"s" {
			return variant, true
		}
	}
	return "", false
}

// decodeRow turns the row into JSON keyed by the header so the product decodes
// through the same tags the HTTP API uses.
func (im *Importer) decodeRow(variant string, header, row []string) (Entry, error) {
	fields := make(map[string]interface{}, len(header))
	category := variant + "s"

	for i, name := range header {
		if name == "" || i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		if name == categoryColumn {
			category = value
			continue
		}
		switch strings.ToLower(value) {
		case "true":
			fields[name] = true
		case "false":
			fields[name] = false
		default:
			fields[name] = value
		}
	}

	// rows without a slug get one derived from the name
	if _, ok := fields["slug"]; !ok {
		if name, ok := fields["name"].(string); ok {
			fields["slug"] = util.Slugify(name)
		}
	}

	product, err := im.catalog.NewProduct(variant)
	if err != nil {
		return Entry{}, err
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal(payload, product); err != nil {
		return Entry{}, fmt.Errorf("invalid row: %w", err)
	}

	return Entry{Variant: variant, Category: category, Product: product}, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
