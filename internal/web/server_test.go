package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommorgenstern/gradus/internal/goals"
	"github.com/tommorgenstern/gradus/internal/store"
	"github.com/tommorgenstern/gradus/internal/study"
)

func testServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	return NewServer(Options{DataDir: dir}), store.New(dir)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := testServer(t)

	rec := get(t, s, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDashboardRendersDefaults(t *testing.T) {
	s, _ := testServer(t)

	rec := get(t, s, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, goals.DefaultProgramName)
	assert.Contains(t, body, "No semesters yet.")
}

func TestAddCourseAndRecordGrade(t *testing.T) {
	s, st := testServer(t)

	rec := postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"Foundations"},
		"name":     {"Programming I"},
		"ects":     {"5"},
		"kind":     {"exam"},
		"start":    {"2024-01-08"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(t, s, "/grades", url.Values{
		"semester": {"1"},
		"module":   {"Foundations"},
		"course":   {"Programming I"},
		"grade":    {"1.3"},
		"date":     {"2024-01-29"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)
	c, err := p.FindCourse(1, "Foundations", "Programming I")
	require.NoError(t, err)
	require.NotNil(t, c.Assessment.Grade)
	assert.Equal(t, 1.3, *c.Assessment.Grade)
	assert.Equal(t, "2024-01-29", c.Assessment.Date.String())
}

func TestRecordPassed(t *testing.T) {
	s, st := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"2"},
		"module":   {"Practice"},
		"name":     {"Project Work"},
		"ects":     {"10"},
		"kind":     {"project"},
	})
	rec := postForm(t, s, "/grades", url.Values{
		"semester": {"2"},
		"module":   {"Practice"},
		"course":   {"Project Work"},
		"passed":   {"true"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)
	c, err := p.FindCourse(2, "Practice", "Project Work")
	require.NoError(t, err)
	assert.True(t, c.Passed())
	assert.Nil(t, c.Assessment.Grade)
}

func TestRecordGradeUnknownCourse(t *testing.T) {
	s, _ := testServer(t)

	rec := postForm(t, s, "/grades", url.Values{
		"semester": {"1"},
		"module":   {"Foundations"},
		"course":   {"Nope"},
		"grade":    {"2.0"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordGradeValidation(t *testing.T) {
	s, _ := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
		"ects":     {"5"},
	})
	rec := postForm(t, s, "/grades", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"course":   {"A"},
		"grade":    {"0.5"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeed(t *testing.T) {
	s, st := testServer(t)

	rec := get(t, s, "/seed")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)

	thesis, err := p.FindCourse(1, "Bachelor Module", "Thesis")
	require.NoError(t, err)
	require.NotNil(t, thesis.Assessment.Grade)
	assert.Equal(t, 1.7, *thesis.Assessment.Grade)

	_, err = p.FindCourse(1, "Bachelor Module", "Colloquium")
	require.NoError(t, err)

	cfg, err := st.LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Goals.Duration)
	assert.Equal(t, 21.0, cfg.Goals.Duration.ExamDays)
	require.NotNil(t, cfg.Program.TotalECTS)
	assert.Equal(t, 180.0, *cfg.Program.TotalECTS)
}

func TestEditCourse(t *testing.T) {
	s, st := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
		"ects":     {"5"},
		"kind":     {"exam"},
	})
	rec := postForm(t, s, "/courses/edit", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"course":   {"A"},
		"new_name": {"Algorithms"},
		"ects":     {"7.5"},
		"kind":     {"project"},
		"start":    {"2024-03-01"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)
	c, err := p.FindCourse(1, "M", "Algorithms")
	require.NoError(t, err)
	assert.Equal(t, 7.5, c.ECTS)
	assert.Equal(t, "project", c.Assessment.Kind)
	assert.Equal(t, "2024-03-01", c.Start.String())
}

func TestEditCourseRelocates(t *testing.T) {
	s, st := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
		"ects":     {"5"},
	})
	rec := postForm(t, s, "/courses/edit", url.Values{
		"semester":    {"1"},
		"module":      {"M"},
		"course":      {"A"},
		"to_semester": {"2"},
		"to_module":   {"N"},
		"new_name":    {"B"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)
	_, err = p.FindCourse(2, "N", "B")
	assert.NoError(t, err)
}

func TestRecordDateOnly(t *testing.T) {
	s, st := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
		"ects":     {"5"},
	})
	postForm(t, s, "/grades", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"course":   {"A"},
		"grade":    {"2.0"},
	})
	rec := postForm(t, s, "/grades", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"course":   {"A"},
		"date":     {"2024-05-01"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)
	c, err := p.FindCourse(1, "M", "A")
	require.NoError(t, err)
	require.NotNil(t, c.Assessment.Grade)
	assert.Equal(t, 2.0, *c.Assessment.Grade)
	assert.Equal(t, "2024-05-01", c.Assessment.Date.String())
}

func TestMoveCourse(t *testing.T) {
	s, st := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
		"ects":     {"5"},
	})
	rec := postForm(t, s, "/courses/move", url.Values{
		"from_semester": {"1"},
		"from_module":   {"M"},
		"name":          {"A"},
		"to_semester":   {"2"},
		"to_module":     {"N"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)
	_, err = p.FindCourse(2, "N", "A")
	assert.NoError(t, err)
}

func TestDeleteCourse(t *testing.T) {
	s, _ := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
		"ects":     {"5"},
	})
	rec := postForm(t, s, "/courses/delete", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(t, s, "/courses/delete", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearResult(t *testing.T) {
	s, st := testServer(t)

	postForm(t, s, "/courses", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"name":     {"A"},
		"ects":     {"5"},
	})
	postForm(t, s, "/grades", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"course":   {"A"},
		"grade":    {"2.0"},
	})
	rec := postForm(t, s, "/grades/clear", url.Values{
		"semester": {"1"},
		"module":   {"M"},
		"course":   {"A"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	p, err := st.LoadProgram(goals.Config{}.Targets())
	require.NoError(t, err)
	c, err := p.FindCourse(1, "M", "A")
	require.NoError(t, err)
	assert.False(t, c.Completed())
}

func TestMetricsAPI(t *testing.T) {
	s, st := testServer(t)

	p := &study.Program{Name: "Test"}
	c := p.AddCourse(1, "M", "A", 5, study.KindExam, study.Date{})
	require.NoError(t, c.RecordGrade(1.0, study.Date{}))
	require.NoError(t, st.SaveProgram(p))

	rec := get(t, s, "/api/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	var m study.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 1, m.TotalCourses)
	assert.Equal(t, 1, m.TopGrades)
	assert.Equal(t, 5.0, m.EarnedECTS)
}

func TestGoalsAPI(t *testing.T) {
	s, _ := testServer(t)

	rec := get(t, s, "/api/goals")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []goalResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 5)
	assert.Equal(t, "study_time", results[0].Name)
}

func TestConfigAPI(t *testing.T) {
	s, _ := testServer(t)

	body := `{"goals":{"grade_average":{"max":1.7}}}`
	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s, "/api/config")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg goals.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	require.NotNil(t, cfg.Goals.GradeAverage)
	assert.Equal(t, 1.7, cfg.Goals.GradeAverage.Max)
}

func TestTrailingSlashRemoved(t *testing.T) {
	s, _ := testServer(t)

	rec := get(t, s, "/healthz/")
	assert.Equal(t, http.StatusOK, rec.Code)
}
