package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apierrors "edgestats/internal/errors"
)

// NewWorkbook builds a workbook with one sheet per table, in order. The
// header row is bold and frozen.
func NewWorkbook(tables []Table) (*excelize.File, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook needs at least one table")
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, tables[0].Name); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet %s: %w", tables[0].Name, err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables {
		if i > 0 {
			if _, err := f.NewSheet(t.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to add sheet %s: %w", t.Name, err)
			}
		}
		if err := writeSheet(f, t, header); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return fmt.Errorf("failed to open sheet %s: %w", t.Name, err)
	}

	if len(t.Columns) > 0 {
		if err := sw.SetPanes(&excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header of %s: %w", t.Name, err)
		}

		cells := make([]interface{}, len(t.Columns))
		for i, c := range t.Columns {
			cells[i] = excelize.Cell{StyleID: headerStyle, Value: c}
		}
		if err := sw.SetRow("A1", cells); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", t.Name, err)
		}
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, t.Name, err)
		}
	}
	return sw.Flush()
}

// WriteWorkbook streams the workbook for tables to out.
func WriteWorkbook(out io.Writer, tables []Table) error {
	f, err := NewWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook for tables to path.
func SaveWorkbook(path string, tables []Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apierrors.NewStorageError("failed to create export directory", err).WithContext("path", path)
	}
	f, err := NewWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return apierrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}
	return nil
}
