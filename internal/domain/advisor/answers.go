package advisor

import (
	"fmt"

	"github.com/yanqian/runfit/internal/domain/catalog"
	apperrors "github.com/yanqian/runfit/pkg/errors"
)

type (
	Gender    string
	Surface   string
	Goal      string
	Frequency string
	Distance  string
	Injury    string
	Pronation string
)

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"

	SurfaceRoad  Surface = "road"
	SurfaceTrail Surface = "trail"

	GoalRace     Goal = "race"
	GoalTraining Goal = "training"

	FrequencyLow  Frequency = "low"
	FrequencyHigh Frequency = "high"

	DistanceShort Distance = "short"
	DistanceLong  Distance = "long"

	InjuryNone    Injury = "none"
	InjuryPresent Injury = "present"

	PronationNo  Pronation = "no"
	PronationYes Pronation = "yes"
)

// Answers is one validated survey submission.
type Answers struct {
	Gender    Gender    `json:"gender"`
	Surface   Surface   `json:"surface"`
	Goal      Goal      `json:"goal"`
	Frequency Frequency `json:"frequency"`
	Distance  Distance  `json:"distance"`
	Injury    Injury    `json:"injury"`
	Pronation Pronation `json:"pronation"`
}

// DefaultAnswers mirrors the preselected options of the survey form.
func DefaultAnswers() Answers {
	return Answers{
		Gender:    GenderMale,
		Surface:   SurfaceRoad,
		Goal:      GoalRace,
		Frequency: FrequencyLow,
		Distance:  DistanceShort,
		Injury:    InjuryNone,
		Pronation: PronationNo,
	}
}

var (
	genderAliases = map[string]Gender{
		"male": GenderMale, "erkek": GenderMale,
		"female": GenderFemale, "kadin": GenderFemale,
	}
	surfaceAliases = map[string]Surface{
		"road": SurfaceRoad, "yol": SurfaceRoad,
		"trail": SurfaceTrail, "patika": SurfaceTrail,
	}
	goalAliases = map[string]Goal{
		"race": GoalRace, "yaris": GoalRace,
		"training": GoalTraining, "antrenman": GoalTraining,
	}
	frequencyAliases = map[string]Frequency{
		"low": FrequencyLow, "3 ve daha az": FrequencyLow,
		"high": FrequencyHigh, "4 ve daha fazla": FrequencyHigh,
	}
	distanceAliases = map[string]Distance{
		"short": DistanceShort, "0-20 km": DistanceShort,
		"long": DistanceLong, "20 km ve daha fazla": DistanceLong,
	}
	injuryAliases = map[string]Injury{
		"none": InjuryNone, "yok": InjuryNone, "no": InjuryNone,
		"present": InjuryPresent, "var": InjuryPresent, "yes": InjuryPresent,
	}
	pronationAliases = map[string]Pronation{
		"no": PronationNo, "hayir": PronationNo,
		"yes": PronationYes, "evet": PronationYes,
	}
)

// ParseAnswers validates a raw submission. Values are matched after text
// normalization, so both "Kadın" and "female" select the same option; blank
// fields take the form default.
func ParseAnswers(req Request) (Answers, error) {
	def := DefaultAnswers()
	var (
		out Answers
		err error
	)
	if out.Gender, err = resolveOption("gender", req.Gender, def.Gender, genderAliases); err != nil {
		return Answers{}, err
	}
	if out.Surface, err = resolveOption("surface", req.Surface, def.Surface, surfaceAliases); err != nil {
		return Answers{}, err
	}
	if out.Goal, err = resolveOption("goal", req.Goal, def.Goal, goalAliases); err != nil {
		return Answers{}, err
	}
	if out.Frequency, err = resolveOption("frequency", req.Frequency, def.Frequency, frequencyAliases); err != nil {
		return Answers{}, err
	}
	if out.Distance, err = resolveOption("distance", req.Distance, def.Distance, distanceAliases); err != nil {
		return Answers{}, err
	}
	if out.Injury, err = resolveOption("injury", req.Injury, def.Injury, injuryAliases); err != nil {
		return Answers{}, err
	}
	if out.Pronation, err = resolveOption("pronation", req.Pronation, def.Pronation, pronationAliases); err != nil {
		return Answers{}, err
	}
	return out, nil
}

func resolveOption[T ~string](field, raw string, fallback T, aliases map[string]T) (T, error) {
	key := catalog.Normalize(raw)
	if key == "" {
		return fallback, nil
	}
	if v, ok := aliases[key]; ok {
		return v, nil
	}
	return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unsupported %s option %q", field, raw), nil)
}
