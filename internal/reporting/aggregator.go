// Package reporting composes the score calculator and performance
// classifier across students, subjects, and groups. It never recomputes a
// score itself; every number here is derived from grading.FinalScore and
// grading.Classify over the gradebooks it is handed. All views are pure
// functions returning plain serializable records, and any filter yielding
// no students or no gradebooks produces empty results, never an error.
package reporting

import (
	"sort"

	"github.com/edufuturoia-commits/aula-core/internal/academic"
	"github.com/edufuturoia-commits/aula-core/internal/grading"
	"github.com/edufuturoia-commits/aula-core/internal/roster"
)

// StudentAverage is one student's average of non-null subject finals for a
// period. SubjectCount distinguishes "zero gradable subjects" (Average 0,
// SubjectCount 0) from a genuine average of 0.
type StudentAverage struct {
	StudentID    string       `json:"student_id"`
	Name         string       `json:"name"`
	Grade        string       `json:"grade"`
	Group        string       `json:"group"`
	Average      float64      `json:"average"`
	SubjectCount int          `json:"subject_count"`
	Tier         grading.Tier `json:"tier"`
}

// SubjectAverage is one gradebook's group mean over students with a
// non-null final.
type SubjectAverage struct {
	Subject        string  `json:"subject"`
	Grade          string  `json:"grade"`
	Group          string  `json:"group"`
	Period         string  `json:"period"`
	Average        float64 `json:"average"`
	GradedStudents int     `json:"graded_students"`
}

// TierDistribution counts students per performance tier. Only students
// with an average above 0 are counted, keeping ungraded students out of
// the statistics.
type TierDistribution struct {
	Superior int `json:"superior"`
	High     int `json:"high"`
	Basic    int `json:"basic"`
	Low      int `json:"low"`
}

// GroupBucket is one bar of the grade-vs-group comparison.
type GroupBucket struct {
	Bucket       string  `json:"bucket"`
	Average      float64 `json:"average"`
	StudentCount int     `json:"student_count"`
}

// StudentAverages computes each student's cross-subject average for the
// given population. Only gradebooks matching the student's grade/group
// contribute, and only non-null finals enter the mean.
func StudentAverages(students []roster.Student, books []academic.Gradebook) []StudentAverage {
	out := make([]StudentAverage, 0, len(students))
	for _, st := range students {
		var sum float64
		count := 0
		for _, gb := range books {
			if gb.Grade != st.Grade || gb.Group != st.Group {
				continue
			}
			final := grading.FinalScore(st.ID, gb.GradingView())
			if final == nil {
				continue
			}
			sum += *final
			count++
		}
		sa := StudentAverage{
			StudentID:    st.ID,
			Name:         st.Name,
			Grade:        st.Grade,
			Group:        st.Group,
			SubjectCount: count,
		}
		if count == 0 {
			// Display average of 0, but SubjectCount tells it apart
			// from a true zero; the tier follows the null policy.
			sa.Tier = grading.Classify(nil)
		} else {
			avg := sum / float64(count)
			sa.Average = avg
			sa.Tier = grading.Classify(&avg)
		}
		out = append(out, sa)
	}
	return out
}

// SubjectAverages computes the per-gradebook group mean across the given
// students. Gradebooks with zero gradable students are excluded so that
// "top subjects" rankings never show artificial zeros.
func SubjectAverages(students []roster.Student, books []academic.Gradebook) []SubjectAverage {
	out := make([]SubjectAverage, 0, len(books))
	for _, gb := range books {
		var sum float64
		count := 0
		for _, st := range students {
			if gb.Grade != st.Grade || gb.Group != st.Group {
				continue
			}
			final := grading.FinalScore(st.ID, gb.GradingView())
			if final == nil {
				continue
			}
			sum += *final
			count++
		}
		if count == 0 {
			continue
		}
		out = append(out, SubjectAverage{
			Subject:        gb.Subject,
			Grade:          gb.Grade,
			Group:          gb.Group,
			Period:         gb.Period,
			Average:        sum / float64(count),
			GradedStudents: count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Average > out[j].Average })
	return out
}

// Distribution buckets student averages into tiers, counting only
// averages above 0.
func Distribution(averages []StudentAverage) TierDistribution {
	var d TierDistribution
	for _, sa := range averages {
		if sa.Average <= 0 {
			continue
		}
		switch sa.Tier {
		case grading.TierSuperior:
			d.Superior++
		case grading.TierHigh:
			d.High++
		case grading.TierBasic:
			d.Basic++
		case grading.TierLow:
			d.Low++
		}
	}
	return d
}

// TopStudents ranks students by average descending and returns the first
// n. Students with no gradable subject are left out.
func TopStudents(averages []StudentAverage, n int) []StudentAverage {
	ranked := make([]StudentAverage, 0, len(averages))
	for _, sa := range averages {
		if sa.SubjectCount == 0 {
			continue
		}
		ranked = append(ranked, sa)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Average > ranked[j].Average })
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// AtRisk lists students with 0 < average < 3.0, lowest first.
func AtRisk(averages []StudentAverage) []StudentAverage {
	out := make([]StudentAverage, 0)
	for _, sa := range averages {
		if sa.Average > 0 && sa.Average < 3.0 {
			out = append(out, sa)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Average < out[j].Average })
	return out
}

// CompareGradeGroups buckets averages either by grade (no grade filter) or
// by group within one grade (grade filter active). A grade bucket is the
// average of its group averages, so a small group weighs the same as a
// large one.
func CompareGradeGroups(students []roster.Student, books []academic.Gradebook, gradeFilter string) []GroupBucket {
	averages := StudentAverages(students, books)

	type groupKey struct{ grade, group string }
	groupSum := map[groupKey]float64{}
	groupCount := map[groupKey]int{}
	for _, sa := range averages {
		if sa.SubjectCount == 0 {
			continue
		}
		if gradeFilter != "" && sa.Grade != gradeFilter {
			continue
		}
		k := groupKey{sa.Grade, sa.Group}
		groupSum[k] += sa.Average
		groupCount[k]++
	}

	if gradeFilter != "" {
		out := make([]GroupBucket, 0, len(groupSum))
		for k, sum := range groupSum {
			out = append(out, GroupBucket{
				Bucket:       k.grade + "-" + k.group,
				Average:      sum / float64(groupCount[k]),
				StudentCount: groupCount[k],
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
		return out
	}

	// No grade filter: roll group averages up into their grade.
	gradeSum := map[string]float64{}
	gradeGroups := map[string]int{}
	gradeStudents := map[string]int{}
	for k, sum := range groupSum {
		gradeSum[k.grade] += sum / float64(groupCount[k])
		gradeGroups[k.grade]++
		gradeStudents[k.grade] += groupCount[k]
	}
	out := make([]GroupBucket, 0, len(gradeSum))
	for grade, sum := range gradeSum {
		out = append(out, GroupBucket{
			Bucket:       grade,
			Average:      sum / float64(gradeGroups[grade]),
			StudentCount: gradeStudents[grade],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}
