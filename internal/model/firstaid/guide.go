package firstaid

// Guide is one static first-aid entry: matched by keyword, rendered as an
// ordered list of steps.
type Guide struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Steps    []string `json:"steps"`
}

// Seed provides the built-in first-aid catalog.
func Seed() []Guide {
	return []Guide{
		{
			Key:      "heart_attack",
			Title:    "Heart Attack",
			Keywords: []string{"heart attack", "chest pain", "pressure", "tightness"},
			Steps: []string{
				"Call emergency services immediately.",
				"Have the person rest and stay calm.",
				"If prescribed, assist with nitroglycerin.",
				"If not allergic, give one aspirin to chew.",
			},
		},
		{
			Key:      "stroke",
			Title:    "Stroke",
			Keywords: []string{"stroke", "face droop", "arm weakness", "slurred speech", "fast"},
			Steps: []string{
				"Call emergency services immediately.",
				"Note the time symptoms started.",
				"Keep the person still and comfortable.",
				"Do not give food or drink.",
			},
		},
		{
			Key:      "choking",
			Title:    "Choking",
			Keywords: []string{"choking", "can’t breathe", "cannot breathe", "airway", "coughing"},
			Steps: []string{
				"Ask if they can cough or speak.",
				"If not, give 5 back blows.",
				"Then give 5 abdominal thrusts.",
				"Repeat until help arrives.",
			},
		},
		{
			Key:      "severe_bleeding",
			Title:    "Severe Bleeding",
			Keywords: []string{"severe bleeding", "bleeding heavily", "bleeding", "blood loss"},
			Steps: []string{
				"Apply firm direct pressure.",
				"Use a clean cloth or bandage.",
				"Keep pressure until help arrives.",
				"Elevate the wound if possible.",
			},
		},
		{
			Key:      "burns",
			Title:    "Burns",
			Keywords: []string{"burn", "burns", "scald"},
			Steps: []string{
				"Cool the burn with running water.",
				"Remove tight items near the burn.",
				"Cover with a clean, dry cloth.",
				"Do not apply creams or ice.",
			},
		},
	}
}
