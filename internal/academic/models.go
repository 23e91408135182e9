package academic

import (
	"strings"

	"github.com/edufuturoia-commits/aula-core/internal/grading"
)

// GradeItem is one weighted assessment component within a gradebook.
// DescriptorIDs reference an external performance-descriptor bank and are
// advisory only; they never enter the score computation.
type GradeItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Weight        float64  `json:"weight"`
	DescriptorIDs []string `json:"performance_descriptor_ids,omitempty"`
}

// StudentScore is one student's raw result on one GradeItem. A nil Score
// means "not yet graded"; present scores live in [0,5].
type StudentScore struct {
	StudentID string   `json:"student_id"`
	ItemID    string   `json:"grade_item_id"`
	Score     *float64 `json:"score"`
}

// Gradebook is the unit of work for one subject taught to one grade/group
// during one academic period. Final scores and tiers are computed on read,
// never stored here.
type Gradebook struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
	Group   string `json:"group"`
	Period  string `json:"period"`
	OwnerID string `json:"owner_id"`

	Items         []GradeItem       `json:"items"`
	Scores        []StudentScore    `json:"scores"`
	Observations  map[string]string `json:"observations,omitempty"`
	DescriptorIDs []string          `json:"period_descriptor_ids,omitempty"`
	Locked        bool              `json:"is_locked"`

	// Version stamps the stored record for compare-and-swap writes.
	Version int64 `json:"-"`
}

// BookID derives the deterministic identifier for the natural key
// (subject, grade, group, period).
func BookID(subject, grade, group, period string) string {
	return strings.Join([]string{subject, grade, group, period}, "|")
}

func (g Gradebook) ID() string { return BookID(g.Subject, g.Grade, g.Group, g.Period) }

// TotalWeight sums the nominal weights of all items, graded or not.
func (g Gradebook) TotalWeight() float64 {
	var total float64
	for _, it := range g.Items {
		total += it.Weight
	}
	return total
}

// GradingView projects the gradebook onto the calculator's minimal shape.
func (g Gradebook) GradingView() grading.Book {
	b := grading.Book{
		Items:  make([]grading.Item, 0, len(g.Items)),
		Scores: make([]grading.Score, 0, len(g.Scores)),
	}
	for _, it := range g.Items {
		b.Items = append(b.Items, grading.Item{ID: it.ID, Weight: it.Weight})
	}
	for _, s := range g.Scores {
		b.Scores = append(b.Scores, grading.Score{StudentID: s.StudentID, ItemID: s.ItemID, Value: s.Score})
	}
	return b
}

// Clone deep-copies the gradebook so that replace-on-write mutations never
// alias slices or maps with the stored value.
func (g Gradebook) Clone() Gradebook {
	out := g
	if g.Items != nil {
		out.Items = make([]GradeItem, len(g.Items))
		for i, it := range g.Items {
			out.Items[i] = it
			if it.DescriptorIDs != nil {
				out.Items[i].DescriptorIDs = append([]string(nil), it.DescriptorIDs...)
			}
		}
	}
	if g.Scores != nil {
		out.Scores = make([]StudentScore, len(g.Scores))
		for i, s := range g.Scores {
			out.Scores[i] = s
			if s.Score != nil {
				v := *s.Score
				out.Scores[i].Score = &v
			}
		}
	}
	if g.Observations != nil {
		out.Observations = make(map[string]string, len(g.Observations))
		for k, v := range g.Observations {
			out.Observations[k] = v
		}
	}
	if g.DescriptorIDs != nil {
		out.DescriptorIDs = append([]string(nil), g.DescriptorIDs...)
	}
	return out
}
