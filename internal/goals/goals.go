package goals

import (
	"math"
	"time"

	"github.com/tommorgenstern/gradus/internal/study"
)

// Days per year including leap days, used for study time checks.
const daysPerYear = 365.25

// Target a program is evaluated against.
//
// Met must be a pure function of the program; goals hold their
// thresholds and no other state.
type Goal interface {
	Name() string
	Met(p *study.Program) bool
}

// Checks that the elapsed study time stays under a year limit.
type StudyTime struct {
	MaxYears float64
	now      func() time.Time
}

func (g StudyTime) Name() string { return "study_time" }

func (g StudyTime) Met(p *study.Program) bool {
	if p.Start.IsZero() {
		return false
	}
	now := time.Now
	if g.now != nil {
		now = g.now
	}
	years := now().Sub(p.Start.Time).Hours() / 24 / daysPerYear
	return years <= g.MaxYears
}

// Checks that the weighted grade average, rounded to one decimal, stays
// at or under a limit. An ungraded program does not meet the goal.
type GradeAverage struct {
	MaxAverage float64
}

func (g GradeAverage) Name() string { return "grade_average" }

func (g GradeAverage) Met(p *study.Program) bool {
	avg := p.Average()
	if avg == nil {
		return false
	}
	return math.Round(*avg*10)/10 <= g.MaxAverage
}

// Checks that enough graded courses were graded 1.0. A program with no
// graded courses does not meet the goal.
type Excellence struct {
	MinShare float64
}

func (g Excellence) Name() string { return "excellence" }

func (g Excellence) Met(p *study.Program) bool {
	var graded, top int
	for _, c := range p.Courses() {
		if c.Assessment.Grade == nil {
			continue
		}
		graded++
		if *c.Assessment.Grade == study.BestGrade {
			top++
		}
	}
	return graded > 0 && float64(top)/float64(graded) >= g.MinShare
}

// Checks that no single completed written exam ran longer than a day
// limit from course start to assessment. One slow exam fails the goal;
// met vacuously while no completed exam has both dates.
type ExamDuration struct {
	MaxDays float64
}

func (g ExamDuration) Name() string { return "exam_duration" }

func (g ExamDuration) Met(p *study.Program) bool {
	return spansWithin(p, true, g.MaxDays)
}

// Checks the assessment span of non-exam courses, like [ExamDuration]
// but for coursework.
type OtherDuration struct {
	MaxDays float64
}

func (g OtherDuration) Name() string { return "other_duration" }

func (g OtherDuration) Met(p *study.Program) bool {
	return spansWithin(p, false, g.MaxDays)
}

// Reports whether every completed, dated course of the selected kind
// finished within maxDays. Courses without a recorded outcome or
// without both dates do not count.
func spansWithin(p *study.Program, exams bool, maxDays float64) bool {
	for _, c := range p.Courses() {
		if c.IsExam() != exams || !c.Completed() {
			continue
		}
		if days, ok := c.Duration(); ok && float64(days) > maxDays {
			return false
		}
	}
	return true
}

// Evaluates a set of goals against a program.
type Evaluator struct {
	goals []Goal
}

func NewEvaluator(goals ...Goal) *Evaluator {
	return &Evaluator{goals: goals}
}

// Returns each goal's result keyed by goal name. Duplicate goals of the
// same name collapse to the last result.
func (e *Evaluator) Evaluate(p *study.Program) map[string]bool {
	results := make(map[string]bool, len(e.goals))
	for _, g := range e.goals {
		results[g.Name()] = g.Met(p)
	}
	return results
}
