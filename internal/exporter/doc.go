// Package exporter writes the feature tables to CSV files and XLSX
// workbooks.
//
// Every export goes through Table, an ordered header plus rows built from
// the presentation records of the dataprocessing and projections packages,
// so CSV and XLSX carry the same public column names.
//
// Example usage:
//
//	tables := exporter.FeatureTables(result, domain.ModeWeekly)
//	w := exporter.NewCSVWriter(cfg.Paths, logger)
//	paths, err := w.WriteTables("2023", tables, true)
//
//	err = exporter.WriteWorkbook(file, tables)
package exporter
