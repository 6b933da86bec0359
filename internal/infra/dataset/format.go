package dataset

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

// Format selects the parser for a downloaded or local file.
type Format string

const (
	FormatAuto Format = ""
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DefaultSheets are tried in order when opening a workbook.
var DefaultSheets = []string{"Data", "DATA"}

// ParseOptions controls how raw bytes become a dataset.
type ParseOptions struct {
	Format    Format
	Sheets    []string
	Delimiter rune
}

func (o ParseOptions) withDefaults() ParseOptions {
	if len(o.Sheets) == 0 {
		o.Sheets = DefaultSheets
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	return o
}

// ParseFormat maps a config value to a Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return FormatAuto, nil
	case "xlsx", "excel", "xlsm":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported dataset format %q", raw)
	}
}

// Parse decodes data named name (a file name, object key or URL path).
func Parse(name string, data []byte, opts ParseOptions) (catalog.Dataset, error) {
	opts = opts.withDefaults()
	switch detectFormat(name, data, opts.Format) {
	case FormatCSV:
		return parseCSV(data, opts.Delimiter)
	default:
		return parseXLSX(data, opts.Sheets)
	}
}

var zipMagic = []byte("PK\x03\x04")

func detectFormat(name string, data []byte, forced Format) Format {
	if forced != FormatAuto {
		return forced
	}
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV
	default:
		return FormatXLSX
	}
}

func cellValue(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return raw
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toDataset(records [][]string) (catalog.Dataset, error) {
	if len(records) == 0 {
		return catalog.Dataset{}, fmt.Errorf("sheet has no header row")
	}
	header := records[0]
	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRow(rec) {
			continue
		}
		row := make([]any, len(rec))
		for i, raw := range rec {
			row[i] = cellValue(raw)
		}
		rows = append(rows, row)
	}
	return catalog.NewDataset(header, rows), nil
}
