package study

// Aggregated progress figures over a program, computed against the
// planned totals of the degree.
type Metrics struct {
	TotalCourses     int
	GradedCourses    int
	CompletedCourses int
	PassedCourses    int

	EarnedECTS   float64
	TotalECTS    float64
	ECTSProgress float64 // Fraction of TotalECTS earned, 0..1.
	TotalExams   int     // Planned exam count of the degree.

	Average *float64

	TopGrades       int     // Courses graded 1.0.
	ExcellenceShare float64 // TopGrades relative to the graded-course count.

	AvgExamDays  *float64 // Mean start-to-assessment span of exams.
	AvgOtherDays *float64 // Mean span of non-exam assessments.
}

// Computes progress metrics for the program. totalECTS and totalExams
// are the planned totals of the degree, not what the tree currently
// contains.
func ComputeMetrics(p *Program, totalECTS float64, totalExams int) Metrics {
	m := Metrics{
		TotalECTS:  totalECTS,
		TotalExams: totalExams,
		Average:    p.Average(),
	}

	var examDays, otherDays []int
	for _, c := range p.Courses() {
		m.TotalCourses++
		if c.Graded() {
			m.GradedCourses++
			if *c.Assessment.Grade == BestGrade {
				m.TopGrades++
			}
		}
		if c.Completed() {
			m.CompletedCourses++
		}
		if c.Passed() {
			m.PassedCourses++
			m.EarnedECTS += c.ECTS
		}
		if days, ok := c.Duration(); ok && c.Completed() {
			if c.IsExam() {
				examDays = append(examDays, days)
			} else {
				otherDays = append(otherDays, days)
			}
		}
	}

	if totalECTS > 0 {
		m.ECTSProgress = m.EarnedECTS / totalECTS
	}
	if m.GradedCourses > 0 {
		m.ExcellenceShare = float64(m.TopGrades) / float64(m.GradedCourses)
	}
	m.AvgExamDays = meanDays(examDays)
	m.AvgOtherDays = meanDays(otherDays)

	return m
}

func meanDays(days []int) *float64 {
	if len(days) == 0 {
		return nil
	}
	var sum int
	for _, d := range days {
		sum += d
	}
	mean := round(float64(sum)/float64(len(days)), 1)
	return &mean
}
