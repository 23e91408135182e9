package academic_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/edufuturoia-commits/aula-core/internal/academic"
)

func TestBookID_Deterministic(t *testing.T) {
	a := academic.BookID("math", "5", "A", "P1")
	b := academic.BookID("math", "5", "A", "P1")
	if a != b {
		t.Fatalf("id is not deterministic: %q vs %q", a, b)
	}
	if a == academic.BookID("math", "5", "B", "P1") {
		t.Fatalf("distinct keys collided on %q", a)
	}
}

func TestGradebook_JSONRoundTrip(t *testing.T) {
	score := 4.5
	in := academic.Gradebook{
		Subject: "math", Grade: "5", Group: "A", Period: "P1", OwnerID: "t1",
		Items: []academic.GradeItem{
			{ID: "i1", Name: "Exam", Weight: 0.6, DescriptorIDs: []string{"d1", "d2"}},
			{ID: "i2", Name: "Quiz", Weight: 0.4},
		},
		Scores: []academic.StudentScore{
			{StudentID: "s1", ItemID: "i1", Score: &score},
			{StudentID: "s1", ItemID: "i2", Score: nil},
		},
		Observations:  map[string]string{"s1": "participates actively"},
		DescriptorIDs: []string{"p1"},
		Locked:        true,
	}

	buf, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out academic.Gradebook
	if err := json.Unmarshal(buf, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip lost data:\nin  %+v\nout %+v", in, out)
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	score := 3.0
	orig := academic.Gradebook{
		Subject: "math", Grade: "5", Group: "A", Period: "P1",
		Items:        []academic.GradeItem{{ID: "i1", Name: "Exam", Weight: 1}},
		Scores:       []academic.StudentScore{{StudentID: "s1", ItemID: "i1", Score: &score}},
		Observations: map[string]string{"s1": "note"},
	}
	cp := orig.Clone()
	cp.Items[0].Name = "changed"
	*cp.Scores[0].Score = 1.0
	cp.Observations["s1"] = "changed"

	if orig.Items[0].Name != "Exam" || *orig.Scores[0].Score != 3.0 || orig.Observations["s1"] != "note" {
		t.Fatalf("clone aliases the original: %+v", orig)
	}
}
