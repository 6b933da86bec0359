package dataset

import (
	"fmt"
	"time"
)

// tableBuilder accumulates rows read from a SQL cursor.
type tableBuilder struct {
	columns []string
	rows    [][]any
}

func (b *tableBuilder) add(values []any) {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = sqlValue(v)
	}
	b.rows = append(b.rows, row)
}

// sqlValue maps driver values onto the scalar kinds the classifiers read.
func sqlValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case string, bool, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
