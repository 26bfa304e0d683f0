package study

import "math"

// Grading scale bounds. 1.0 is the best grade, anything above
// PassingGrade is a fail.
const (
	BestGrade    = 1.0
	WorstGrade   = 5.0
	PassingGrade = 4.0
)

// Assessment kind that counts as a written exam. Any other kind is
// treated as coursework for duration statistics.
const KindExam = "exam"

// Assessment outcome of a course.
//
// Grade and Passed are pointers so that "no result yet" is
// distinguishable from a recorded result. A course is either graded or
// marked pass/fail, never both; recording one clears the other. Should
// hand-edited data carry both, the grade decides.
type Assessment struct {
	Kind   string   `json:"kind"`
	Grade  *float64 `json:"grade,omitempty"`
	Date   Date     `json:"date,omitzero"`
	Passed *bool    `json:"passed,omitempty"`
}

type Course struct {
	Name       string     `json:"name"`
	ECTS       float64    `json:"ects"`
	Start      Date       `json:"start,omitzero"`
	Assessment Assessment `json:"assessment"`
}

// Reports whether the course has a recorded grade.
func (c *Course) Graded() bool {
	return c.Assessment.Grade != nil
}

// Reports whether the course counts as passed, either through an
// explicit pass mark or through a passing grade.
func (c *Course) Passed() bool {
	if c.Assessment.Grade != nil {
		return *c.Assessment.Grade <= PassingGrade
	}
	return c.Assessment.Passed != nil && *c.Assessment.Passed
}

// Reports whether any outcome has been recorded for the course.
func (c *Course) Completed() bool {
	return c.Assessment.Grade != nil || c.Assessment.Passed != nil
}

// Reports the days between the course start and its assessment date, or
// false when either date is missing.
func (c *Course) Duration() (int, bool) {
	if c.Start.IsZero() || c.Assessment.Date.IsZero() {
		return 0, false
	}
	return c.Start.DaysUntil(c.Assessment.Date), true
}

// Reports whether the course assessment is a written exam.
func (c *Course) IsExam() bool {
	return c.Assessment.Kind == KindExam
}

type Module struct {
	Name    string    `json:"name"`
	Courses []*Course `json:"courses"`
}

// Returns the ECTS sum over all courses of the module.
func (m *Module) ECTS() float64 {
	var sum float64
	for _, c := range m.Courses {
		sum += c.ECTS
	}
	return sum
}

// Returns the ECTS sum over the module's passed courses.
func (m *Module) EarnedECTS() float64 {
	var sum float64
	for _, c := range m.Courses {
		if c.Passed() {
			sum += c.ECTS
		}
	}
	return sum
}

// Returns the ECTS-weighted grade average over the module's graded
// courses, or nil when none are graded.
func (m *Module) Average() *float64 {
	return weightedAverage(m.Courses)
}

type Semester struct {
	Number  int       `json:"number"`
	Modules []*Module `json:"modules"`
}

// Degree program with its full semester, module and course tree.
type Program struct {
	Name      string      `json:"name"`
	Start     Date        `json:"start,omitzero"`
	Semesters []*Semester `json:"semesters"`
}

// Calls fn for every course of the program in semester order.
func (p *Program) EachCourse(fn func(*Semester, *Module, *Course)) {
	for _, s := range p.Semesters {
		for _, m := range s.Modules {
			for _, c := range m.Courses {
				fn(s, m, c)
			}
		}
	}
}

// Returns all courses of the program in semester order.
func (p *Program) Courses() []*Course {
	var courses []*Course
	p.EachCourse(func(_ *Semester, _ *Module, c *Course) {
		courses = append(courses, c)
	})
	return courses
}

// Returns the ECTS sum over the program's passed courses.
func (p *Program) EarnedECTS() float64 {
	var sum float64
	for _, c := range p.Courses() {
		if c.Passed() {
			sum += c.ECTS
		}
	}
	return sum
}

// Returns the ECTS-weighted grade average over all graded courses of
// the program, rounded to two decimals, or nil when none are graded.
func (p *Program) Average() *float64 {
	return weightedAverage(p.Courses())
}

func weightedAverage(courses []*Course) *float64 {
	var sum, weight float64
	for _, c := range courses {
		if c.Assessment.Grade == nil {
			continue
		}
		sum += *c.Assessment.Grade * c.ECTS
		weight += c.ECTS
	}
	if weight == 0 {
		return nil
	}
	avg := round(sum/weight, 2)
	return &avg
}

func round(value float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(value*shift) / shift
}
