package cuisine

// Rules is the data-driven policy for cuisine extraction: confidence
// thresholds plus the generic-food exclusion set and the known-cuisine
// allow set. The sets live here as data, not branching code, so they
// can be tested and extended independently of the extraction algorithm
// and overridden from configuration.
type Rules struct {
	// MinConfidence is the primary threshold; concepts at or below it
	// are ignored.
	MinConfidence float64 `yaml:"min_confidence"`
	// FallbackConfidence is the threshold for the no-lists fallback pass.
	FallbackConfidence float64 `yaml:"fallback_confidence"`
	// Exclusions lists generic food labels that never become search tags.
	Exclusions []string `yaml:"exclusions"`
	// Cuisines is the allow list of labels that map to searchable cuisines.
	Cuisines []string `yaml:"cuisines"`
}

// DefaultRules returns the built-in extraction policy.
func DefaultRules() Rules {
	return Rules{
		MinConfidence:      0.85,
		FallbackConfidence: 0.95,
		Exclusions: []string{
			"dish", "food", "meal", "plate", "dinner", "lunch", "breakfast",
			"sauce", "cheese", "vegetable", "meat", "dough", "crust", "pie",
			"pastry", "frozen", "ham", "ingredient", "tomato", "salami",
			"pepperoni", "mozzarella",
		},
		Cuisines: []string{
			"pizza", "sushi", "burger", "pasta", "chinese",
			"indian", "mexican", "italian", "thai", "japanese",
		},
	}
}

// merged fills empty fields of r from the defaults so a partial config
// override keeps the rest of the policy intact.
func (r Rules) merged() Rules {
	def := DefaultRules()
	if r.MinConfidence <= 0 {
		r.MinConfidence = def.MinConfidence
	}
	if r.FallbackConfidence <= 0 {
		r.FallbackConfidence = def.FallbackConfidence
	}
	if len(r.Exclusions) == 0 {
		r.Exclusions = def.Exclusions
	}
	if len(r.Cuisines) == 0 {
		r.Cuisines = def.Cuisines
	}
	return r
}
