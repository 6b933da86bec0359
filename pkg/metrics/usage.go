package metrics

// QueryUsage captures how much of the catalog a single recommendation touched.
type QueryUsage struct {
	RowsScanned int   `json:"rowsScanned"`
	RowsMatched int   `json:"rowsMatched"`
	Predicates  int   `json:"predicates"`
	DurationUs  int64 `json:"durationUs"`
}

// Selectivity is the matched share of scanned rows.
func (u QueryUsage) Selectivity() float64 {
	if u.RowsScanned == 0 {
		return 0
	}
	return float64(u.RowsMatched) / float64(u.RowsScanned)
}
