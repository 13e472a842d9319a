package media

// ScoreBreakdown holds the eight sub-scores that compose a recommendation's
// total, before the final clamp. Sub-scores keep their fractional precision so
// callers can explain close rankings.
type ScoreBreakdown struct {
	Genre         float64
	Rating        float64
	Content       float64
	CastCrew      float64
	Popularity    float64
	Tone          float64
	Feedback      float64
	Keyword       float64
	Justification string
}

// ScoredRecommendation pairs a candidate with its composite score. TotalScore
// is always an integer in [0, 120].
type ScoredRecommendation struct {
	Item       Item
	TotalScore int
	Breakdown  ScoreBreakdown
}
