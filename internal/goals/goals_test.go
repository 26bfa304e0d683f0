package goals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommorgenstern/gradus/internal/study"
)

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func gradedCourse(p *study.Program, name string, ects, grade float64) {
	c := p.AddCourse(1, "M", name, ects, study.KindExam, study.Date{})
	if err := c.RecordGrade(grade, study.Date{}); err != nil {
		panic(err)
	}
}

func TestStudyTime(t *testing.T) {
	p := &study.Program{Start: study.NewDate(2023, time.December, 5)}

	within := StudyTime{MaxYears: 3, now: fixedNow(2026, time.June, 1)}
	assert.True(t, within.Met(p))

	over := StudyTime{MaxYears: 3, now: fixedNow(2027, time.January, 1)}
	assert.False(t, over.Met(p))

	// 2024 is a leap year, so exactly three calendar years is 1096
	// days and already exceeds 3 * 365.25.
	boundary := StudyTime{MaxYears: 3, now: fixedNow(2026, time.December, 5)}
	assert.False(t, boundary.Met(p))
}

func TestStudyTimeWithoutStart(t *testing.T) {
	g := StudyTime{MaxYears: 3, now: fixedNow(2026, time.June, 1)}
	assert.False(t, g.Met(&study.Program{}))
}

func TestGradeAverage(t *testing.T) {
	p := &study.Program{}
	gradedCourse(p, "A", 5, 1.7)
	gradedCourse(p, "B", 5, 2.0)

	// Weighted average 1.85 rounds to 1.9 for the goal check.
	assert.True(t, GradeAverage{MaxAverage: 1.9}.Met(p))
	assert.False(t, GradeAverage{MaxAverage: 1.8}.Met(p))
}

func TestGradeAverageUngraded(t *testing.T) {
	assert.False(t, GradeAverage{MaxAverage: 1.9}.Met(&study.Program{}))
}

func TestExcellence(t *testing.T) {
	p := &study.Program{}
	gradedCourse(p, "A", 5, 1.0)
	gradedCourse(p, "B", 5, 2.0)
	gradedCourse(p, "C", 5, 3.0)

	// One 1.0 out of three graded courses is a 33% share.
	assert.True(t, Excellence{MinShare: 0.10}.Met(p))
	assert.False(t, Excellence{MinShare: 0.50}.Met(p))
}

func TestExcellenceIgnoresUngradedCourses(t *testing.T) {
	p := &study.Program{}
	gradedCourse(p, "A", 5, 1.0)
	p.AddCourse(1, "M", "B", 5, study.KindExam, study.Date{})
	p.AddCourse(1, "M", "C", 5, study.KindExam, study.Date{})

	// The open courses do not dilute the share: 1 of 1 graded.
	assert.True(t, Excellence{MinShare: 1.0}.Met(p))
}

func TestExcellenceWithoutGrades(t *testing.T) {
	assert.False(t, Excellence{MinShare: 0.10}.Met(&study.Program{}))
}

func TestExamDuration(t *testing.T) {
	p := &study.Program{}
	c := p.AddCourse(1, "M", "A", 5, study.KindExam, study.NewDate(2024, time.January, 1))
	require.NoError(t, c.RecordGrade(2.0, study.NewDate(2024, time.January, 22)))
	c = p.AddCourse(1, "M", "B", 5, study.KindExam, study.NewDate(2024, time.February, 1))
	require.NoError(t, c.RecordGrade(2.0, study.NewDate(2024, time.February, 24)))

	// Spans are 21 and 23 days; the slowest course decides.
	assert.True(t, ExamDuration{MaxDays: 23}.Met(p))
	assert.False(t, ExamDuration{MaxDays: 22}.Met(p))
}

func TestExamDurationSingleSlowExamFails(t *testing.T) {
	p := &study.Program{}
	c := p.AddCourse(1, "M", "A", 5, study.KindExam, study.NewDate(2024, time.January, 1))
	require.NoError(t, c.RecordGrade(2.0, study.NewDate(2024, time.January, 2)))
	c = p.AddCourse(1, "M", "B", 5, study.KindExam, study.NewDate(2024, time.February, 1))
	require.NoError(t, c.RecordGrade(2.0, study.NewDate(2024, time.March, 12)))

	// A 1-day exam does not excuse the 40-day one; the mean is irrelevant.
	assert.False(t, ExamDuration{MaxDays: 21}.Met(p))
}

func TestExamDurationSkipsIncompleteCourses(t *testing.T) {
	p := &study.Program{}
	c := p.AddCourse(1, "M", "A", 5, study.KindExam, study.NewDate(2024, time.January, 1))
	c.Assessment.Date = study.NewDate(2024, time.June, 1)

	// Dated but without a recorded outcome, the course does not count.
	assert.True(t, ExamDuration{MaxDays: 21}.Met(p))
}

func TestExamDurationIgnoresOtherKinds(t *testing.T) {
	p := &study.Program{}
	c := p.AddCourse(1, "M", "A", 5, "project", study.NewDate(2024, time.January, 1))
	c.RecordPassed(true, study.NewDate(2024, time.June, 1))

	// No completed exam has dates, so the exam goal holds vacuously.
	assert.True(t, ExamDuration{MaxDays: 21}.Met(p))
	assert.False(t, OtherDuration{MaxDays: 42}.Met(p))
}

func TestEvaluator(t *testing.T) {
	p := &study.Program{Start: study.NewDate(2023, time.December, 5)}
	gradedCourse(p, "A", 5, 1.0)

	e := NewEvaluator(
		GradeAverage{MaxAverage: 1.9},
		Excellence{MinShare: 0.50},
		ExamDuration{MaxDays: 21},
	)
	results := e.Evaluate(p)

	assert.Equal(t, map[string]bool{
		"grade_average": true,
		"excellence":    true,
		"exam_duration": true,
	}, results)
}

func TestTargetsDefaults(t *testing.T) {
	targets := Config{}.Targets()

	assert.Equal(t, DefaultProgramName, targets.ProgramName)
	assert.Equal(t, DefaultProgramStart, targets.ProgramStart)
	assert.Equal(t, 3.0, targets.MaxYears)
	assert.Equal(t, 1.9, targets.MaxAverage)
	assert.Equal(t, 21.0, targets.ExamDays)
	assert.Equal(t, 42.0, targets.OtherDays)
	assert.Equal(t, 0.10, targets.MinShare)
	assert.Equal(t, 180.0, targets.TotalECTS)
	assert.Equal(t, 36, targets.TotalExams)
}

func TestTargetsLegacyDurationFansOut(t *testing.T) {
	cfg := Config{Goals: GoalsConfig{
		Duration: &DurationConfig{ExamDays: 28, OtherDays: 56},
	}}
	targets := cfg.Targets()

	assert.Equal(t, 28.0, targets.ExamDays)
	assert.Equal(t, 56.0, targets.OtherDays)
}

func TestTargetsExplicitBeatsLegacy(t *testing.T) {
	cfg := Config{Goals: GoalsConfig{
		ExamDuration: &ThresholdConfig{Max: 14},
		Duration:     &DurationConfig{ExamDays: 28, OtherDays: 56},
	}}
	targets := cfg.Targets()

	assert.Equal(t, 14.0, targets.ExamDays)
	assert.Equal(t, 56.0, targets.OtherDays)
}

func TestFromTargetsCoversAllGoals(t *testing.T) {
	set := FromTargets(Config{}.Targets())

	names := make(map[string]bool, len(set))
	for _, g := range set {
		names[g.Name()] = true
	}
	assert.Equal(t, map[string]bool{
		"study_time":     true,
		"grade_average":  true,
		"excellence":     true,
		"exam_duration":  true,
		"other_duration": true,
	}, names)
}

func TestNewProgram(t *testing.T) {
	p := NewProgram(Config{}.Targets())

	assert.Equal(t, DefaultProgramName, p.Name)
	assert.Equal(t, DefaultProgramStart, p.Start)
	assert.Empty(t, p.Semesters)
}
