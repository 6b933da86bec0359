package advisor

import "github.com/yanqian/runfit/internal/domain/catalog"

// Predicate narrows the row set on one survey dimension.
type Predicate struct {
	Name string
	Keep func(catalog.Derived) bool
}

// Predicates returns the active filters for a in their fixed order. Optional
// dimensions contribute a predicate only when the answer opts in.
func Predicates(a Answers) []Predicate {
	gender := catalog.GenderMale
	if a.Gender == GenderFemale {
		gender = catalog.GenderFemale
	}
	surface := catalog.SurfaceRoad
	if a.Surface == SurfaceTrail {
		surface = catalog.SurfaceTrail
	}
	goal := catalog.GoalRace
	if a.Goal == GoalTraining {
		goal = catalog.GoalTraining
	}

	preds := []Predicate{
		{Name: "gender", Keep: func(d catalog.Derived) bool { return d.Gender == gender }},
		{Name: "surface", Keep: func(d catalog.Derived) bool { return d.Surface == surface }},
		{Name: "goal", Keep: func(d catalog.Derived) bool { return d.Goal == goal }},
	}
	if a.Frequency == FrequencyHigh {
		preds = append(preds, Predicate{Name: "durability", Keep: func(d catalog.Derived) bool { return d.Durability.Yes() }})
	}
	if a.Distance == DistanceLong {
		preds = append(preds, Predicate{Name: "distance", Keep: func(d catalog.Derived) bool {
			return d.Distance == catalog.DistanceMedium || d.Distance == catalog.DistanceLong
		}})
	}
	if a.Injury == InjuryPresent {
		preds = append(preds, Predicate{Name: "injury", Keep: func(d catalog.Derived) bool { return d.Injury.Yes() }})
	}
	if a.Pronation == PronationYes {
		preds = append(preds, Predicate{Name: "pronation", Keep: func(d catalog.Derived) bool { return d.Pronation.Yes() }})
	}
	return preds
}

// Filter returns the indices of rows satisfying every predicate, in row order.
// Each predicate narrows the set left by the previous one.
func Filter(view *catalog.View, preds []Predicate) []int {
	rows := make([]int, view.Len())
	for i := range rows {
		rows[i] = i
	}
	for _, pred := range preds {
		kept := rows[:0]
		for _, i := range rows {
			if pred.Keep(view.Derived(i)) {
				kept = append(kept, i)
			}
		}
		rows = kept
		if len(rows) == 0 {
			break
		}
	}
	return rows
}

// Row maps an output column name to its raw value.
type Row map[string]any

// Result is the filtered, projected row set. An empty result is valid.
type Result struct {
	Total   int
	Columns []string
	Rows    []Row
	Indices []int
}

// Query filters view by a and projects the matches onto columns. Columns the
// view does not know are left out.
func Query(view *catalog.View, a Answers, columns []string) Result {
	return run(view, Predicates(a), columns)
}

func run(view *catalog.View, preds []Predicate, columns []string) Result {
	show := make([]string, 0, len(columns))
	for _, col := range columns {
		if view.Has(col) {
			show = append(show, col)
		}
	}

	indices := Filter(view, preds)
	rows := make([]Row, 0, len(indices))
	for _, i := range indices {
		row := make(Row, len(show))
		for _, col := range show {
			row[col], _ = view.Value(i, col)
		}
		rows = append(rows, row)
	}
	return Result{Total: len(indices), Columns: show, Rows: rows, Indices: indices}
}
