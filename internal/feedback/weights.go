package feedback

// positiveSignalFloor is the star rating at which a record starts counting as
// positive preference signal.
const positiveSignalFloor = 3.5

// Weights carries accumulated preference weight per genre and per person.
// Weights are raw sums of qualifying star ratings; scoring consumes them
// un-normalized.
type Weights struct {
	Genre  map[int64]float64
	Person map[string]float64
}

// Aggregate folds feedback records into preference weights. Only records
// rated at or above the positive-signal floor contribute; each adds its star
// rating to every genre and person the rated item touched.
func Aggregate(records []Record) Weights {
	weights := Weights{
		Genre:  make(map[int64]float64),
		Person: make(map[string]float64),
	}
	for _, record := range records {
		if record.Rating < positiveSignalFloor {
			continue
		}
		for _, genreID := range record.GenreIDs {
			weights.Genre[genreID] += record.Rating
		}
		for _, name := range record.CastNames {
			if name != "" {
				weights.Person[name] += record.Rating
			}
		}
		for _, name := range record.CrewNames {
			if name != "" {
				weights.Person[name] += record.Rating
			}
		}
	}
	return weights
}

// Normalized returns a 0-1 scaled view of the genre and person weights,
// dividing by the maximum observed weight in each map. Intended for display;
// the scoring path uses the raw weights.
func (w Weights) Normalized() Weights {
	return Weights{
		Genre:  normalizeInt64Map(w.Genre),
		Person: normalizeStringMap(w.Person),
	}
}

func normalizeInt64Map(raw map[int64]float64) map[int64]float64 {
	normalized := make(map[int64]float64, len(raw))
	var max float64
	for _, weight := range raw {
		if weight > max {
			max = weight
		}
	}
	if max == 0 {
		return normalized
	}
	for key, weight := range raw {
		normalized[key] = weight / max
	}
	return normalized
}

func normalizeStringMap(raw map[string]float64) map[string]float64 {
	normalized := make(map[string]float64, len(raw))
	var max float64
	for _, weight := range raw {
		if weight > max {
			max = weight
		}
	}
	if max == 0 {
		return normalized
	}
	for key, weight := range raw {
		normalized[key] = weight / max
	}
	return normalized
}
