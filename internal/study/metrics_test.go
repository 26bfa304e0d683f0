package study

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetrics(t *testing.T) {
	p := testProgram()
	m := ComputeMetrics(p, 180, 36)

	assert.Equal(t, 4, m.TotalCourses)
	assert.Equal(t, 2, m.GradedCourses)
	assert.Equal(t, 3, m.CompletedCourses)
	assert.Equal(t, 3, m.PassedCourses)
	assert.Equal(t, 20.0, m.EarnedECTS)
	assert.Equal(t, 180.0, m.TotalECTS)
	assert.Equal(t, 36, m.TotalExams)
	assert.InDelta(t, 20.0/180.0, m.ECTSProgress, 1e-9)

	require.NotNil(t, m.Average)
	assert.InDelta(t, 1.65, *m.Average, 1e-9)

	// One 1.0 among two graded courses; open courses do not dilute it.
	assert.Equal(t, 1, m.TopGrades)
	assert.InDelta(t, 0.5, m.ExcellenceShare, 1e-9)
}

func TestComputeMetricsDurationSkipsIncomplete(t *testing.T) {
	p := &Program{}
	c := p.AddCourse(1, "M", "A", 5, KindExam, NewDate(2024, time.January, 1))
	c.Assessment.Date = NewDate(2024, time.June, 1)

	m := ComputeMetrics(p, 180, 36)

	assert.Nil(t, m.AvgExamDays)
}

func TestComputeMetricsDurations(t *testing.T) {
	p := &Program{}

	// Exams at 21 and 42 days, one project at 42 days.
	c := p.AddCourse(1, "M", "A", 5, KindExam, NewDate(2024, time.January, 1))
	require.NoError(t, c.RecordGrade(2.0, NewDate(2024, time.January, 22)))
	c = p.AddCourse(1, "M", "B", 5, KindExam, NewDate(2024, time.February, 1))
	require.NoError(t, c.RecordGrade(2.0, NewDate(2024, time.March, 14)))
	c = p.AddCourse(1, "M", "C", 5, "project", NewDate(2024, time.April, 1))
	c.RecordPassed(true, NewDate(2024, time.May, 13))

	// Graded but undated courses stay out of the duration figures.
	c = p.AddCourse(1, "M", "D", 5, KindExam, Date{})
	require.NoError(t, c.RecordGrade(3.0, Date{}))

	m := ComputeMetrics(p, 180, 36)

	require.NotNil(t, m.AvgExamDays)
	assert.Equal(t, 31.5, *m.AvgExamDays)
	require.NotNil(t, m.AvgOtherDays)
	assert.Equal(t, 42.0, *m.AvgOtherDays)
}

func TestComputeMetricsEmptyProgram(t *testing.T) {
	m := ComputeMetrics(&Program{}, 180, 36)

	assert.Zero(t, m.TotalCourses)
	assert.Zero(t, m.ECTSProgress)
	assert.Nil(t, m.Average)
	assert.Nil(t, m.AvgExamDays)
	assert.Nil(t, m.AvgOtherDays)
}
