package study

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradeOf(v float64) *float64 { return &v }

func testProgram() *Program {
	p := &Program{Name: "B.Sc. Software Engineering", Start: NewDate(2023, time.December, 5)}

	c := p.AddCourse(1, "Foundations", "Programming I", 5, KindExam, NewDate(2024, time.January, 8))
	c.RecordGrade(1.0, NewDate(2024, time.January, 29))

	c = p.AddCourse(1, "Foundations", "Mathematics", 5, KindExam, NewDate(2024, time.February, 1))
	c.RecordGrade(2.3, NewDate(2024, time.March, 14))

	c = p.AddCourse(2, "Practice", "Project Work", 10, "project", NewDate(2024, time.April, 1))
	c.RecordPassed(true, NewDate(2024, time.May, 13))

	p.AddCourse(2, "Practice", "Databases", 5, KindExam, NewDate(2024, time.June, 1))

	return p
}

func TestCoursePassed(t *testing.T) {
	passing := &Course{Assessment: Assessment{Grade: gradeOf(4.0)}}
	failing := &Course{Assessment: Assessment{Grade: gradeOf(4.7)}}
	marked := &Course{Assessment: Assessment{Passed: new(bool)}}
	open := &Course{}

	assert.True(t, passing.Passed())
	assert.False(t, failing.Passed())
	assert.False(t, marked.Passed())
	assert.False(t, open.Passed())
	assert.True(t, marked.Completed())
	assert.False(t, open.Completed())
}

func TestCoursePassedGradeWinsOverMark(t *testing.T) {
	// Hand-edited data can carry both fields; the grade decides.
	passed := true
	c := &Course{Assessment: Assessment{Grade: gradeOf(4.7), Passed: &passed}}

	assert.False(t, c.Passed())
}

func TestProgramAverageIsECTSWeighted(t *testing.T) {
	p := testProgram()

	// (1.0*5 + 2.3*5) / 10 = 1.65; the pass/fail course does not count.
	avg := p.Average()
	require.NotNil(t, avg)
	assert.InDelta(t, 1.65, *avg, 1e-9)
}

func TestProgramAverageRounds(t *testing.T) {
	p := &Program{}
	p.AddCourse(1, "M", "A", 5, KindExam, Date{}).RecordGrade(1.0, Date{})
	p.AddCourse(1, "M", "B", 10, KindExam, Date{}).RecordGrade(1.7, Date{})

	// (1.0*5 + 1.7*10) / 15 = 1.4666… -> 1.47
	avg := p.Average()
	require.NotNil(t, avg)
	assert.Equal(t, 1.47, *avg)
}

func TestProgramAverageWithoutGrades(t *testing.T) {
	p := &Program{}
	p.AddCourse(1, "M", "A", 5, KindExam, Date{})

	assert.Nil(t, p.Average())
}

func TestEarnedECTS(t *testing.T) {
	p := testProgram()

	// Two graded passes at 5 ECTS each plus the 10 ECTS pass mark.
	assert.Equal(t, 20.0, p.EarnedECTS())
}

func TestAddCourseIsIdempotent(t *testing.T) {
	p := testProgram()

	before := len(p.Courses())
	c := p.AddCourse(1, "Foundations", "Programming I", 5, KindExam, Date{})

	assert.Len(t, p.Courses(), before)
	require.NotNil(t, c.Assessment.Grade)
	assert.Equal(t, 1.0, *c.Assessment.Grade)
}

func TestFindCourse(t *testing.T) {
	p := testProgram()

	c, err := p.FindCourse(1, "Foundations", "Mathematics")
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", c.Name)

	_, err = p.FindCourse(1, "Foundations", "Biology")
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = p.FindCourse(1, "Chemistry", "Biology")
	assert.ErrorIs(t, err, ErrModuleNotFound)

	_, err = p.FindCourse(9, "Foundations", "Mathematics")
	assert.ErrorIs(t, err, ErrSemesterNotFound)
}

func TestMoveCoursePrunesEmptySource(t *testing.T) {
	p := &Program{}
	p.AddCourse(1, "M", "A", 5, KindExam, Date{})

	c, err := p.MoveCourse(1, "M", "A", 2, "N")
	require.NoError(t, err)
	assert.Equal(t, "A", c.Name)

	// Semester 1 lost its only module and must be gone entirely.
	require.Len(t, p.Semesters, 1)
	assert.Equal(t, 2, p.Semesters[0].Number)

	moved, err := p.FindCourse(2, "N", "A")
	require.NoError(t, err)
	assert.Same(t, c, moved)
}

func TestDeleteCourse(t *testing.T) {
	p := testProgram()

	require.True(t, p.DeleteCourse(2, "Practice", "Databases"))
	assert.False(t, p.DeleteCourse(2, "Practice", "Databases"))

	_, err := p.FindCourse(2, "Practice", "Databases")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestRecordGradeClearsPassMark(t *testing.T) {
	c := &Course{}
	c.RecordPassed(true, Date{})
	require.NoError(t, c.RecordGrade(1.3, NewDate(2024, time.March, 1)))

	assert.Nil(t, c.Assessment.Passed)
	require.NotNil(t, c.Assessment.Grade)
	assert.Equal(t, 1.3, *c.Assessment.Grade)
}

func TestRecordGradeRange(t *testing.T) {
	c := &Course{}
	assert.ErrorIs(t, c.RecordGrade(0.7, Date{}), ErrInvalidGrade)
	assert.ErrorIs(t, c.RecordGrade(5.3, Date{}), ErrInvalidGrade)
	assert.NoError(t, c.RecordGrade(5.0, Date{}))
}

func TestRecordPassedClearsGrade(t *testing.T) {
	c := &Course{}
	require.NoError(t, c.RecordGrade(2.0, Date{}))
	c.RecordPassed(false, Date{})

	assert.Nil(t, c.Assessment.Grade)
	assert.False(t, c.Passed())
}

func TestClearResult(t *testing.T) {
	c := &Course{}
	require.NoError(t, c.RecordGrade(2.0, NewDate(2024, time.March, 1)))
	c.ClearResult()

	assert.False(t, c.Completed())
	assert.True(t, c.Assessment.Date.IsZero())
}

func TestSemesterOrdering(t *testing.T) {
	p := &Program{}
	p.AddModule(3, "C")
	p.AddModule(1, "A")
	p.AddModule(2, "B")

	var numbers []int
	for _, s := range p.Semesters {
		numbers = append(numbers, s.Number)
	}
	assert.Equal(t, []int{1, 2, 3}, numbers)
}

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2023, time.December, 5)
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2023-12-05"`, string(data))

	var parsed Date
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.Equal(t, d, parsed)

	var zero Date
	data, err = zero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDaysUntil(t *testing.T) {
	start := NewDate(2024, time.January, 8)
	end := NewDate(2024, time.January, 29)
	assert.Equal(t, 21, start.DaysUntil(end))
}
