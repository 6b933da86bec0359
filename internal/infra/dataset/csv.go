package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(data []byte, delimiter rune) (catalog.Dataset, error) {
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return catalog.Dataset{}, fmt.Errorf("read csv row: %w", err)
		}
		records = append(records, rec)
	}
	return toDataset(records)
}
