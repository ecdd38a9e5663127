package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"edgestats/internal/config"
	apierrors "edgestats/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  config.PathsConfig
	logger *slog.Logger
}

// NewCSVWriter creates a writer that resolves relative paths under the
// export directory.
func NewCSVWriter(paths config.PathsConfig, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger.With(slog.String("component", "csv_exporter"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", apierrors.NewStorageError("failed to create export directory", err).
			WithContext("path", fullPath)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		return "", apierrors.NewStorageError("failed to open export file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	headers := options.Headers
	if options.Append {
		headers = nil
	}
	if err := EncodeCSV(file, headers, options.Records, options.BOMPrefix && !options.Append); err != nil {
		return "", apierrors.NewStorageError("failed to write export file", err).
			WithContext("path", fullPath)
	}
	return fullPath, nil
}

// WriteTable writes one table to filePath.
func (w *CSVWriter) WriteTable(filePath string, table Table, bom bool) (string, error) {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   table.Columns,
		Records:   table.StringRows(),
		BOMPrefix: bom,
	})
}

// WriteTables writes each table to <prefix>_<name>.csv and returns the
// written paths in table order.
func (w *CSVWriter) WriteTables(prefix string, tables []Table, bom bool) ([]string, error) {
	written := make([]string, 0, len(tables))
	for _, t := range tables {
		name := t.Name + ".csv"
		if prefix != "" {
			name = prefix + "_" + name
		}
		path, err := w.WriteTable(name, t, bom)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// EncodeCSV writes an optional BOM, the header (when non-empty) and the
// records to out.
func EncodeCSV(out io.Writer, headers []string, records [][]string, bom bool) error {
	if bom {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(out))
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// resolvePath places relative paths under the export directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return w.paths.ExportPath(filePath)
}
