package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Label is a canonical categorical value. The empty label means the source
// text could not be classified.
type Label string

const (
	Unknown Label = ""

	GenderMale   Label = "erkek"
	GenderFemale Label = "kadin"

	SurfaceRoad  Label = "road"
	SurfaceTrail Label = "trail"

	GoalRace     Label = "yaris"
	GoalTraining Label = "antrenman"

	DistanceShort  Label = "kisa mesafe"
	DistanceMedium Label = "orta mesafe"
	DistanceLong   Label = "uzun mesafe"

	flagYes Label = "yes"
)

// Tristate is a boolean attribute that may not be classifiable at all.
type Tristate int8

const (
	FlagUnknown Tristate = iota
	FlagNo
	FlagYes
)

func flagOf(ok bool) Tristate {
	if ok {
		return FlagYes
	}
	return FlagNo
}

// Yes reports whether the flag is known to be true.
func (t Tristate) Yes() bool {
	return t == FlagYes
}

func (t Tristate) String() string {
	switch t {
	case FlagYes:
		return "yes"
	case FlagNo:
		return "no"
	default:
		return "unknown"
	}
}

// MarshalText renders the flag as yes, no or unknown.
func (t Tristate) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Value returns true, false or nil for unknown.
func (t Tristate) Value() any {
	switch t {
	case FlagYes:
		return true
	case FlagNo:
		return false
	default:
		return nil
	}
}

type matchMode uint8

const (
	matchSubstring matchMode = iota
	matchExact
)

// Term is a single keyword test over normalized text.
type Term struct {
	Text     string
	notAfter string
	mode     matchMode
}

// Sub matches text anywhere in the value.
func Sub(text string) Term { return Term{Text: text, mode: matchSubstring} }

// SubNotAfter matches text anywhere except where it directly follows prefix,
// so SubNotAfter("male", "fe") accepts "males" but not "female".
func SubNotAfter(text, prefix string) Term {
	return Term{Text: text, notAfter: prefix, mode: matchSubstring}
}

// Exact matches when the whole normalized value equals text.
func Exact(text string) Term { return Term{Text: text, mode: matchExact} }

func (t Term) holds(text string) bool {
	if t.mode == matchExact {
		return text == t.Text
	}
	if t.notAfter == "" {
		return strings.Contains(text, t.Text)
	}
	for from := 0; from <= len(text)-len(t.Text); {
		i := strings.Index(text[from:], t.Text)
		if i < 0 {
			return false
		}
		at := from + i
		if !strings.HasSuffix(text[:at], t.notAfter) {
			return true
		}
		from = at + 1
	}
	return false
}

// Clause holds when all of its terms hold.
type Clause []Term

// All builds a conjunctive clause.
func All(terms ...Term) Clause { return Clause(terms) }

func (c Clause) holds(text string) bool {
	for _, term := range c {
		if !term.holds(text) {
			return false
		}
	}
	return len(c) > 0
}

// Rule assigns Label when any of its clauses holds.
type Rule struct {
	Label   Label
	Clauses []Clause
}

// When builds a rule from single-term clauses.
func When(label Label, terms ...Term) Rule {
	clauses := make([]Clause, 0, len(terms))
	for _, term := range terms {
		clauses = append(clauses, All(term))
	}
	return Rule{Label: label, Clauses: clauses}
}

// Or appends extra clauses to the rule.
func (r Rule) Or(clauses ...Clause) Rule {
	r.Clauses = append(append([]Clause(nil), r.Clauses...), clauses...)
	return r
}

// RuleSet is evaluated in order; the first matching rule wins.
type RuleSet []Rule

// Classify returns the label of the first rule matching normalized text.
func (rs RuleSet) Classify(text string) Label {
	for _, rule := range rs {
		for _, clause := range rule.Clauses {
			if clause.holds(text) {
				return rule.Label
			}
		}
	}
	return Unknown
}

var (
	GenderRules = RuleSet{
		When(GenderMale, Sub("erkek"), SubNotAfter("male", "fe")),
		When(GenderFemale, Sub("kadin"), Sub("female")),
	}

	SurfaceRules = RuleSet{
		When(SurfaceRoad, Sub("yol"), Sub("road")),
		When(SurfaceTrail, Sub("patika"), Sub("trail")),
	}

	GoalRules = RuleSet{
		When(GoalRace, Sub("yaris"), Sub("race")),
		When(GoalTraining, Sub("antrenman"), Sub("training")),
	}

	DistanceRules = RuleSet{
		Rule{Label: DistanceMedium, Clauses: []Clause{All(Sub("orta"), Sub("mesafe")), All(Sub("medium"))}},
		Rule{Label: DistanceLong, Clauses: []Clause{All(Sub("uzun"), Sub("mesafe")), All(Sub("long"))}},
		Rule{Label: DistanceShort, Clauses: []Clause{All(Sub("kisa"), Sub("mesafe")), All(Sub("short"))}},
	}

	DurabilityRules = RuleSet{
		Rule{Label: flagYes, Clauses: []Clause{All(Sub("uzun"), Sub("omurlu")), All(Sub("uzun"), Sub("omur"))}},
	}

	InjuryRules = RuleSet{
		When(flagYes, Sub("evet"), Sub("uygun"), Sub("yes")),
	}

	PronationRules = RuleSet{
		When(flagYes, Exact("1"), Sub("evet"), Sub("yes")),
	}
)

// InjuryCodeAccommodated is the numeric code some exports use to mark a shoe
// as suitable for runners with a knee or hip condition.
const InjuryCodeAccommodated = 1.2

const injuryTolerance = 1e-6

func ClassifyGender(value any) Label { return GenderRules.Classify(Normalize(value)) }
func ClassifySurface(value any) Label { return SurfaceRules.Classify(Normalize(value)) }
func ClassifyGoal(value any) Label { return GoalRules.Classify(Normalize(value)) }
func ClassifyDistance(value any) Label { return DistanceRules.Classify(Normalize(value)) }

// ClassifyDurability is yes when the text mentions long life ("uzun ömürlü").
func ClassifyDurability(value any) Tristate {
	return classifyFlag(DurabilityRules, value)
}

// ClassifyInjury tries the numeric code first and falls back to keywords
// when the value is not a number.
func ClassifyInjury(value any) Tristate {
	if number, ok := parseNumber(value); ok {
		return flagOf(math.Abs(number-InjuryCodeAccommodated) < injuryTolerance)
	}
	return classifyFlag(InjuryRules, value)
}

// ClassifyPronation is yes for "1", "evet" or "yes".
func ClassifyPronation(value any) Tristate {
	return classifyFlag(PronationRules, value)
}

func classifyFlag(rules RuleSet, value any) Tristate {
	text := Normalize(value)
	if text == "" {
		return FlagUnknown
	}
	return flagOf(rules.Classify(text) == flagYes)
}

func parseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
