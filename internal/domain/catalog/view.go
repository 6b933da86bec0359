package catalog

// Derived column names appended to the normalized view.
const (
	ColumnGender     = "gender"
	ColumnSurface    = "surface"
	ColumnGoal       = "goal"
	ColumnDurability = "is_long_durability"
	ColumnDistance   = "distance_group"
	ColumnInjury     = "injury_ok"
	ColumnPronation  = "pronation_yes"
)

// DerivedColumns lists the derived columns in the order they are appended.
var DerivedColumns = []string{
	ColumnGender,
	ColumnSurface,
	ColumnGoal,
	ColumnDurability,
	ColumnDistance,
	ColumnInjury,
	ColumnPronation,
}

// Derived holds the canonical attributes of one row.
type Derived struct {
	Gender     Label    `json:"gender"`
	Surface    Label    `json:"surface"`
	Goal       Label    `json:"goal"`
	Durability Tristate `json:"isLongDurability"`
	Distance   Label    `json:"distanceGroup"`
	Injury     Tristate `json:"injuryOk"`
	Pronation  Tristate `json:"pronationYes"`
}

func (d Derived) value(column string) (any, bool) {
	label := func(l Label) any {
		if l == Unknown {
			return nil
		}
		return string(l)
	}
	switch column {
	case ColumnGender:
		return label(d.Gender), true
	case ColumnSurface:
		return label(d.Surface), true
	case ColumnGoal:
		return label(d.Goal), true
	case ColumnDurability:
		return d.Durability.Value(), true
	case ColumnDistance:
		return label(d.Distance), true
	case ColumnInjury:
		return d.Injury.Value(), true
	case ColumnPronation:
		return d.Pronation.Value(), true
	default:
		return nil, false
	}
}

// View is the dataset augmented with one derived attribute set per row.
type View struct {
	dataset Dataset
	schema  Schema
	derived []Derived
	columns map[string]int
}

// BuildView classifies every row of ds using the columns bound in schema.
// A field without a column classifies nil for every row.
func BuildView(ds Dataset, schema Schema) *View {
	idx := func(f Field) int { return schema.Index(f) }
	gender, surface, goal := idx(FieldGender), idx(FieldSurface), idx(FieldGoal)
	durability, distance := idx(FieldDurability), idx(FieldDistance)
	injury, pronation := idx(FieldInjury), idx(FieldPronation)

	derived := make([]Derived, ds.Len())
	for i := range derived {
		derived[i] = Derived{
			Gender:     ClassifyGender(ds.Value(i, gender)),
			Surface:    ClassifySurface(ds.Value(i, surface)),
			Goal:       ClassifyGoal(ds.Value(i, goal)),
			Durability: ClassifyDurability(ds.Value(i, durability)),
			Distance:   ClassifyDistance(ds.Value(i, distance)),
			Injury:     ClassifyInjury(ds.Value(i, injury)),
			Pronation:  ClassifyPronation(ds.Value(i, pronation)),
		}
	}

	columns := make(map[string]int, len(ds.Columns))
	for i, col := range ds.Columns {
		columns[col] = i
	}
	return &View{dataset: ds, schema: schema, derived: derived, columns: columns}
}

// Len returns the number of rows.
func (v *View) Len() int {
	return len(v.derived)
}

// Schema returns the schema the view was built with.
func (v *View) Schema() Schema {
	return v.schema
}

// Derived returns the canonical attributes of row i.
func (v *View) Derived(i int) Derived {
	return v.derived[i]
}

// Columns returns the original columns followed by the derived ones.
func (v *View) Columns() []string {
	out := make([]string, 0, len(v.dataset.Columns)+len(DerivedColumns))
	out = append(out, v.dataset.Columns...)
	return append(out, DerivedColumns...)
}

// Has reports whether column is an original or derived column of the view.
// Original columns shadow derived ones with the same name.
func (v *View) Has(column string) bool {
	if _, ok := v.columns[column]; ok {
		return true
	}
	_, ok := Derived{}.value(column)
	return ok
}

// Value returns the cell of row i in column.
func (v *View) Value(i int, column string) (any, bool) {
	if i < 0 || i >= len(v.derived) {
		return nil, false
	}
	if idx, ok := v.columns[column]; ok {
		return v.dataset.Value(i, idx), true
	}
	return v.derived[i].value(column)
}
