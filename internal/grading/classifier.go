package grading

// Tier is one of four ordered performance bands on the 0 to 5 scale.
type Tier string

const (
	TierSuperior Tier = "SUPERIOR"
	TierHigh     Tier = "HIGH"
	TierBasic    Tier = "BASIC"
	TierLow      Tier = "LOW"
)

// Classify maps a final score to its performance tier. Bands are inclusive
// on their lower edge and no rounding is applied before comparison. A nil
// score (not gradable) classifies as the lowest tier so that ungraded
// students surface in risk reports.
func Classify(score *float64) Tier {
	if score == nil {
		return TierLow
	}
	switch s := *score; {
	case s >= 4.6:
		return TierSuperior
	case s >= 4.0:
		return TierHigh
	case s >= 3.0:
		return TierBasic
	default:
		return TierLow
	}
}
