package triangle

// SeasonalPattern maps a calendar quarter to the incremental amount a
// synthetic observation in that quarter receives.
type SeasonalPattern map[int]float64

// DefaultSeasonalPattern returns the illustrative pattern used throughout
// the documentation: a heavy first quarter, flat middle, light fourth.
func DefaultSeasonalPattern() SeasonalPattern {
	return SeasonalPattern{
		1: 100,
		2: 50,
		3: 50,
		4: 40,
	}
}

// Synthetic generates a deterministic upper-left triangle of incremental
// observations. Origin o is observed through development maxOrigin-o+1, and
// each amount depends only on the cell's calendar quarter. With the default
// pattern every origin's true ultimate over 8 development periods is 480,
// which makes seasonal distortion of naive projections easy to demonstrate.
func Synthetic(origins int, pattern SeasonalPattern) []Observation {
	if pattern == nil {
		pattern = DefaultSeasonalPattern()
	}

	var out []Observation
	for origin := 1; origin <= origins; origin++ {
		for dev := 1; dev <= origins-origin+1; dev++ {
			o := Observation{Origin: origin, Development: dev}
			o.Amount = pattern[o.CalendarQuarter()]
			out = append(out, o)
		}
	}
	return out
}

// SyntheticSquare generates the full origins x developments square, not just
// the observed region. Used in tests to compare projected ultimates against
// ground truth.
func SyntheticSquare(origins, developments int, pattern SeasonalPattern) []Observation {
	if pattern == nil {
		pattern = DefaultSeasonalPattern()
	}

	var out []Observation
	for origin := 1; origin <= origins; origin++ {
		for dev := 1; dev <= developments; dev++ {
			o := Observation{Origin: origin, Development: dev}
			o.Amount = pattern[o.CalendarQuarter()]
			out = append(out, o)
		}
	}
	return out
}
