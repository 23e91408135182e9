package grading

// Item is a minimal view of a weighted assessment component needed for
// scoring. Keep this in sync with whatever fields your gradebook store uses.
type Item struct {
	ID     string
	Weight float64
}

// Score is one student's raw result on one item. A nil Value means the
// item has not been graded yet; it is not a zero.
type Score struct {
	StudentID string
	ItemID    string
	Value     *float64
}

// Book is a minimal view of one gradebook needed for scoring.
type Book struct {
	Items  []Item
	Scores []Score
}

// FinalScore computes a student's weighted final score over the items that
// were actually graded. Ungraded items are excluded from both the weighted
// sum and the denominator, so a partially graded book still yields a
// representative running average. Returns nil when no item has a recorded
// score ("not gradable yet"); callers must not coerce that to 0.
func FinalScore(studentID string, b Book) *float64 {
	byItem := make(map[string]*float64, len(b.Items))
	for _, s := range b.Scores {
		if s.StudentID == studentID {
			byItem[s.ItemID] = s.Value
		}
	}

	var weightedSum, totalWeight float64
	for _, it := range b.Items {
		v, ok := byItem[it.ID]
		if !ok || v == nil {
			continue
		}
		weightedSum += *v * it.Weight
		totalWeight += it.Weight
	}
	if totalWeight == 0 {
		return nil
	}
	final := weightedSum / totalWeight
	return &final
}
