package catalog

import (
	"strconv"
	"strings"
)

// OutputLetters are the spreadsheet columns surfaced in recommendation results.
var OutputLetters = []string{"B", "C", "D", "H", "K", "L", "M", "N", "O", "P"}

// Field identifies one survey dimension in the source data.
type Field string

const (
	FieldGender     Field = "gender"
	FieldSurface    Field = "surface"
	FieldGoal       Field = "goal"
	FieldDurability Field = "durability"
	FieldDistance   Field = "distance"
	FieldInjury     Field = "injury"
	FieldPronation  Field = "pronation"
)

// Fields lists the survey dimensions in question order.
var Fields = []Field{
	FieldGender,
	FieldSurface,
	FieldGoal,
	FieldDurability,
	FieldDistance,
	FieldInjury,
	FieldPronation,
}

// FieldSource says where a field is expected in the source table: under one
// of Names, or failing that at the zero-based Position.
type FieldSource struct {
	Field    Field
	Names    []string
	Position int
}

// DefaultFieldSources maps question N to a column headed "N", falling back
// to the N-th column.
func DefaultFieldSources() []FieldSource {
	sources := make([]FieldSource, 0, len(Fields))
	for i, field := range Fields {
		slot := i + 1
		sources = append(sources, FieldSource{
			Field:    field,
			Names:    []string{strconv.Itoa(slot)},
			Position: slot - 1,
		})
	}
	return sources
}

// Resolution tells how a field found its column.
type Resolution string

const (
	ResolvedByName     Resolution = "name"
	ResolvedByPosition Resolution = "position"
	ResolvedAbsent     Resolution = "absent"
)

// ResolvedField is a field bound to a concrete column index, or -1 when the
// source has no such column.
type ResolvedField struct {
	Field  Field      `json:"field"`
	Column string     `json:"column,omitempty"`
	Index  int        `json:"index"`
	By     Resolution `json:"resolvedBy"`
}

// Schema is resolved once per dataset; nothing downstream re-derives column
// positions.
type Schema struct {
	Fields []ResolvedField `json:"fields"`
	Output []string        `json:"output"`
}

// ResolveSchema binds every field source and the output letters to columns.
func ResolveSchema(columns []string, sources []FieldSource, letters []string) Schema {
	byName := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, dup := byName[col]; !dup {
			byName[col] = i
		}
	}

	fields := make([]ResolvedField, 0, len(sources))
	for _, src := range sources {
		fields = append(fields, resolveField(src, columns, byName))
	}
	return Schema{Fields: fields, Output: ResolveColumns(columns, letters)}
}

func resolveField(src FieldSource, columns []string, byName map[string]int) ResolvedField {
	for _, name := range src.Names {
		if idx, ok := byName[strings.TrimSpace(name)]; ok {
			return ResolvedField{Field: src.Field, Column: columns[idx], Index: idx, By: ResolvedByName}
		}
	}
	if src.Position >= 0 && src.Position < len(columns) {
		return ResolvedField{Field: src.Field, Column: columns[src.Position], Index: src.Position, By: ResolvedByPosition}
	}
	return ResolvedField{Field: src.Field, Index: -1, By: ResolvedAbsent}
}

// Index returns the column index bound to field, or -1.
func (s Schema) Index(field Field) int {
	for _, f := range s.Fields {
		if f.Field == field {
			return f.Index
		}
	}
	return -1
}

// Absent lists the fields that fell back to an all-null placeholder.
func (s Schema) Absent() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.By == ResolvedAbsent {
			out = append(out, f.Field)
		}
	}
	return out
}

// LetterIndex converts a spreadsheet column letter (A, B, ..., Z, AA, ...) to
// a zero-based index. It reports false for anything that is not a letter.
func LetterIndex(letter string) (int, bool) {
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return 0, false
	}
	val := 0
	for _, ch := range strings.ToUpper(letter) {
		if ch < 'A' || ch > 'Z' {
			return 0, false
		}
		val = val*26 + int(ch-'A') + 1
		if val > 1<<24 {
			return 0, false
		}
	}
	return val - 1, true
}

// ResolveColumns maps letters to column names in letter order, silently
// skipping letters outside the table.
func ResolveColumns(columns []string, letters []string) []string {
	names := make([]string, 0, len(letters))
	for _, letter := range letters {
		idx, ok := LetterIndex(letter)
		if !ok || idx >= len(columns) {
			continue
		}
		names = append(names, columns[idx])
	}
	return names
}
