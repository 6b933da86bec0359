package dataset

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

func parseXLSX(data []byte, sheets []string) (catalog.Dataset, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	var errs []error
	for _, sheet := range sheets {
		if idx, err := book.GetSheetIndex(sheet); err != nil || idx < 0 {
			errs = append(errs, fmt.Errorf("sheet %q not found", sheet))
			continue
		}
		rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			errs = append(errs, fmt.Errorf("read sheet %q: %w", sheet, err))
			continue
		}
		ds, err := toDataset(rows)
		if err != nil {
			errs = append(errs, fmt.Errorf("sheet %q: %w", sheet, err))
			continue
		}
		return ds, nil
	}
	return catalog.Dataset{}, fmt.Errorf("no usable sheet in workbook: %w", errors.Join(errs...))
}
