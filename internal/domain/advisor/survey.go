package advisor

// Question describes one survey step for the presentation layer.
type Question struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Options []Option `json:"options"`
	Default string   `json:"default"`
}

// Option is a selectable answer: Value is what the API accepts, Label what
// the form shows.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Survey returns the seven questions in order.
func Survey() []Question {
	def := DefaultAnswers()
	return []Question{
		{
			ID:      "gender",
			Title:   "Soru 1/7 · Cinsiyet",
			Options: []Option{{string(GenderMale), "Erkek"}, {string(GenderFemale), "Kadin"}},
			Default: string(def.Gender),
		},
		{
			ID:      "surface",
			Title:   "Soru 2/7 · Zemin",
			Options: []Option{{string(SurfaceRoad), "Road"}, {string(SurfaceTrail), "Trail"}},
			Default: string(def.Surface),
		},
		{
			ID:      "goal",
			Title:   "Soru 3/7 · Hedef",
			Options: []Option{{string(GoalRace), "Yaris"}, {string(GoalTraining), "Antrenman"}},
			Default: string(def.Goal),
		},
		{
			ID:      "frequency",
			Title:   "Soru 4/7 · Haftalık sıklık",
			Options: []Option{{string(FrequencyLow), "3 ve daha az"}, {string(FrequencyHigh), "4 ve daha fazla"}},
			Default: string(def.Frequency),
		},
		{
			ID:      "distance",
			Title:   "Soru 5/7 · Mesafe (her koşu)",
			Options: []Option{{string(DistanceShort), "0-20 km"}, {string(DistanceLong), "20 km ve daha fazla"}},
			Default: string(def.Distance),
		},
		{
			ID:      "injury",
			Title:   "Soru 6/7 · Diz/Kalça sakatlığı",
			Options: []Option{{string(InjuryPresent), "Var"}, {string(InjuryNone), "Yok"}},
			Default: string(def.Injury),
		},
		{
			ID:      "pronation",
			Title:   "Soru 7/7 · Pronasyon",
			Options: []Option{{string(PronationYes), "Evet"}, {string(PronationNo), "Hayir"}},
			Default: string(def.Pronation),
		},
	}
}
