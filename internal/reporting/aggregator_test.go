package reporting_test

import (
	"testing"

	"github.com/edufuturoia-commits/aula-core/internal/academic"
	"github.com/edufuturoia-commits/aula-core/internal/grading"
	"github.com/edufuturoia-commits/aula-core/internal/reporting"
	"github.com/edufuturoia-commits/aula-core/internal/roster"
)

func fp(v float64) *float64 { return &v }

// singleItemBook builds a gradebook with one full-weight item and the given
// per-student raw scores, so each student's final equals their raw score.
func singleItemBook(subject, grade, group string, scores map[string]*float64) academic.Gradebook {
	gb := academic.Gradebook{
		Subject: subject, Grade: grade, Group: group, Period: "P1",
		Items: []academic.GradeItem{{ID: subject + "-i1", Name: "Final", Weight: 1}},
	}
	for sid, v := range scores {
		gb.Scores = append(gb.Scores, academic.StudentScore{StudentID: sid, ItemID: subject + "-i1", Score: v})
	}
	return gb
}

func student(id, name, grade, group string) roster.Student {
	return roster.Student{ID: id, Name: name, Grade: grade, Group: group}
}

func TestStudentAverages_AveragesNonNullSubjectsOnly(t *testing.T) {
	students := []roster.Student{student("s1", "Ana", "5", "A")}
	books := []academic.Gradebook{
		singleItemBook("math", "5", "A", map[string]*float64{"s1": fp(4.0)}),
		singleItemBook("spanish", "5", "A", map[string]*float64{"s1": fp(3.0)}),
		singleItemBook("science", "5", "A", map[string]*float64{"s1": nil}), // ungraded
	}
	got := reporting.StudentAverages(students, books)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].SubjectCount != 2 {
		t.Fatalf("expected 2 gradable subjects, got %d", got[0].SubjectCount)
	}
	if got[0].Average != 3.5 {
		t.Fatalf("expected average 3.5, got %v", got[0].Average)
	}
	if got[0].Tier != grading.TierBasic {
		t.Fatalf("expected BASIC, got %s", got[0].Tier)
	}
}

func TestStudentAverages_ZeroSubjectsIsFlaggedNotConflated(t *testing.T) {
	students := []roster.Student{student("s1", "Ana", "5", "A")}
	books := []academic.Gradebook{
		singleItemBook("math", "5", "A", nil), // nobody graded yet
	}
	got := reporting.StudentAverages(students, books)
	if got[0].Average != 0 || got[0].SubjectCount != 0 {
		t.Fatalf("expected flagged zero, got %+v", got[0])
	}
	if got[0].Tier != grading.TierLow {
		t.Fatalf("ungraded student classifies LOW, got %s", got[0].Tier)
	}
}

func TestStudentAverages_IgnoresOtherGroupsBooks(t *testing.T) {
	students := []roster.Student{student("s1", "Ana", "5", "A")}
	books := []academic.Gradebook{
		singleItemBook("math", "5", "A", map[string]*float64{"s1": fp(4.0)}),
		singleItemBook("math", "5", "B", map[string]*float64{"s1": fp(1.0)}), // other group
	}
	got := reporting.StudentAverages(students, books)
	if got[0].Average != 4.0 || got[0].SubjectCount != 1 {
		t.Fatalf("gradebook from another group leaked in: %+v", got[0])
	}
}

func TestSubjectAverages_MeanOfNonNullFinals(t *testing.T) {
	students := []roster.Student{
		student("s1", "Ana", "5", "A"),
		student("s2", "Luis", "5", "A"),
		student("s3", "Mia", "5", "A"),
	}
	books := []academic.Gradebook{
		singleItemBook("math", "5", "A", map[string]*float64{"s1": fp(5.0), "s2": fp(3.0), "s3": nil}),
		singleItemBook("art", "5", "A", nil), // zero gradable students
	}
	got := reporting.SubjectAverages(students, books)
	if len(got) != 1 {
		t.Fatalf("subjects with zero gradable students must be excluded; got %d records", len(got))
	}
	if got[0].Subject != "math" || got[0].Average != 4.0 || got[0].GradedStudents != 2 {
		t.Fatalf("unexpected subject average: %+v", got[0])
	}
}

func TestDistribution_CountsPerTierExcludingZero(t *testing.T) {
	students := []roster.Student{
		student("s1", "Ana", "5", "A"),
		student("s2", "Luis", "5", "A"),
		student("s3", "Mia", "5", "A"),
		student("s4", "Ungraded", "5", "A"),
	}
	books := []academic.Gradebook{
		singleItemBook("math", "5", "A", map[string]*float64{"s1": fp(5.0), "s2": fp(3.5), "s3": fp(2.0)}),
	}
	avgs := reporting.StudentAverages(students, books)
	d := reporting.Distribution(avgs)
	want := reporting.TierDistribution{Superior: 1, High: 0, Basic: 1, Low: 1}
	if d != want {
		t.Fatalf("distribution %+v, want %+v", d, want)
	}
	if total := d.Superior + d.High + d.Basic + d.Low; total != 3 {
		t.Fatalf("counts must sum to students with average > 0; got %d", total)
	}
}

func TestTopStudentsAndAtRisk(t *testing.T) {
	students := []roster.Student{
		student("s1", "Ana", "5", "A"),
		student("s2", "Luis", "5", "A"),
		student("s3", "Mia", "5", "A"),
		student("s4", "Ungraded", "5", "A"),
	}
	books := []academic.Gradebook{
		singleItemBook("math", "5", "A", map[string]*float64{"s1": fp(4.8), "s2": fp(2.5), "s3": fp(1.5)}),
	}
	avgs := reporting.StudentAverages(students, books)

	top := reporting.TopStudents(avgs, 2)
	if len(top) != 2 || top[0].StudentID != "s1" || top[1].StudentID != "s2" {
		t.Fatalf("unexpected top list: %+v", top)
	}

	risk := reporting.AtRisk(avgs)
	if len(risk) != 2 {
		t.Fatalf("expected 2 at-risk students, got %d", len(risk))
	}
	// Ascending: worst first. The ungraded s4 (average 0) stays out.
	if risk[0].StudentID != "s3" || risk[1].StudentID != "s2" {
		t.Fatalf("unexpected risk ordering: %+v", risk)
	}
}

func TestCompareGradeGroups_BucketsByGradeThenGroup(t *testing.T) {
	students := []roster.Student{
		student("s1", "Ana", "5", "A"),
		student("s2", "Luis", "5", "B"),
		student("s3", "Mia", "6", "A"),
	}
	books := []academic.Gradebook{
		singleItemBook("math", "5", "A", map[string]*float64{"s1": fp(4.0)}),
		singleItemBook("math", "5", "B", map[string]*float64{"s2": fp(2.0)}),
		singleItemBook("math", "6", "A", map[string]*float64{"s3": fp(5.0)}),
	}

	byGrade := reporting.CompareGradeGroups(students, books, "")
	if len(byGrade) != 2 {
		t.Fatalf("expected buckets for 2 grades, got %+v", byGrade)
	}
	// Grade 5 = mean of its two group averages (4.0 and 2.0).
	if byGrade[0].Bucket != "5" || byGrade[0].Average != 3.0 {
		t.Fatalf("unexpected grade-5 bucket: %+v", byGrade[0])
	}
	if byGrade[1].Bucket != "6" || byGrade[1].Average != 5.0 {
		t.Fatalf("unexpected grade-6 bucket: %+v", byGrade[1])
	}

	byGroup := reporting.CompareGradeGroups(students, books, "5")
	if len(byGroup) != 2 {
		t.Fatalf("expected buckets for 2 groups, got %+v", byGroup)
	}
	if byGroup[0].Bucket != "5-A" || byGroup[0].Average != 4.0 {
		t.Fatalf("unexpected 5-A bucket: %+v", byGroup[0])
	}
	if byGroup[1].Bucket != "5-B" || byGroup[1].Average != 2.0 {
		t.Fatalf("unexpected 5-B bucket: %+v", byGroup[1])
	}
}

func TestEmptyPopulationsYieldEmptyResults(t *testing.T) {
	avgs := reporting.StudentAverages(nil, nil)
	if len(avgs) != 0 {
		t.Fatalf("expected empty averages, got %+v", avgs)
	}
	if got := reporting.SubjectAverages(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty subject averages, got %+v", got)
	}
	if d := reporting.Distribution(nil); d != (reporting.TierDistribution{}) {
		t.Fatalf("expected zeroed distribution, got %+v", d)
	}
	if got := reporting.TopStudents(nil, 5); len(got) != 0 {
		t.Fatalf("expected empty top list, got %+v", got)
	}
	if got := reporting.AtRisk(nil); len(got) != 0 {
		t.Fatalf("expected empty risk list, got %+v", got)
	}
	if got := reporting.CompareGradeGroups(nil, nil, ""); len(got) != 0 {
		t.Fatalf("expected empty comparison, got %+v", got)
	}
}
