package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadSheet loads one worksheet of an xlsx workbook into a table. The first
// row is the header; shorter data rows (excelize trims trailing empty
// cells) are padded.
func ReadSheet(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrImport, path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s of %s: %v", ErrImport, sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s of %s has no header row", ErrImport, sheet, path)
	}

	table := New(rows[0]...)
	for _, record := range rows[1:] {
		row := make(Row, len(table.Headers))
		for i, h := range table.Headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		table.Append(row)
	}
	return table, nil
}

// WriteSheet writes the table to an xlsx workbook containing a single
// worksheet, overwriting any existing file at path wholesale.
func WriteSheet(t *Table, path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		record := make([]interface{}, len(t.Headers))
		for j, h := range t.Headers {
			record[j] = row[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
