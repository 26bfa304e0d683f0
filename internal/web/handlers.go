package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tommorgenstern/gradus/internal/goals"
	"github.com/tommorgenstern/gradus/internal/store"
	"github.com/tommorgenstern/gradus/internal/study"
)

type handler struct {
	store *store.Store
}

// View model of the dashboard page.
type dashboardView struct {
	Program *study.Program
	Metrics study.Metrics
	Targets goals.Targets
	Goals   []goalResult
}

type goalResult struct {
	Name string `json:"name"`
	Met  bool   `json:"met"`
}

// Loads everything a request needs: resolved targets and the program.
func (h *handler) load() (goals.Targets, *study.Program, error) {
	cfg, err := h.store.LoadConfig()
	if err != nil {
		return goals.Targets{}, nil, err
	}
	targets := cfg.Targets()

	p, err := h.store.LoadProgram(targets)
	if err != nil {
		return goals.Targets{}, nil, err
	}
	return targets, p, nil
}

func (h *handler) evaluate(t goals.Targets, p *study.Program) []goalResult {
	set := goals.FromTargets(t)
	results := goals.NewEvaluator(set...).Evaluate(p)

	// Keep the goal set's order; the evaluator map has none.
	out := make([]goalResult, 0, len(set))
	for _, g := range set {
		out = append(out, goalResult{Name: g.Name(), Met: results[g.Name()]})
	}
	return out
}

func (h *handler) dashboard(c echo.Context) error {
	targets, p, err := h.load()
	if err != nil {
		return err
	}
	view := dashboardView{
		Program: p,
		Metrics: study.ComputeMetrics(p, targets.TotalECTS, targets.TotalExams),
		Targets: targets,
		Goals:   h.evaluate(targets, p),
	}
	return c.Render(http.StatusOK, "index", view)
}

func (h *handler) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Replaces the stored data with a small demo program and a goals file
// spelling out the defaults, so a fresh install has something to show.
func (h *handler) seed(c echo.Context) error {
	targets := goals.Config{}.Targets()
	p := goals.NewProgram(targets)

	thesis := p.AddCourse(1, "Bachelor Module", "Thesis", 9, "paper", study.NewDate(2025, time.April, 1))
	if err := thesis.RecordGrade(1.7, study.NewDate(2025, time.July, 20)); err != nil {
		return err
	}
	colloquium := p.AddCourse(1, "Bachelor Module", "Colloquium", 1, "oral", study.NewDate(2025, time.July, 1))
	if err := colloquium.RecordGrade(1.3, study.NewDate(2025, time.July, 25)); err != nil {
		return err
	}

	if err := h.store.SaveProgram(p); err != nil {
		return err
	}

	ects := targets.TotalECTS
	exams := targets.TotalExams
	cfg := goals.Config{
		Program: goals.ProgramConfig{
			Name:       targets.ProgramName,
			Start:      targets.ProgramStart,
			TotalECTS:  &ects,
			TotalExams: &exams,
		},
		Goals: goals.GoalsConfig{
			StudyTime:    &goals.ThresholdConfig{Max: targets.MaxYears},
			GradeAverage: &goals.ThresholdConfig{Max: targets.MaxAverage},
			Excellence:   &goals.ExcellenceConfig{MinShare: targets.MinShare},
			Duration:     &goals.DurationConfig{ExamDays: targets.ExamDays, OtherDays: targets.OtherDays},
		},
	}
	if err := h.store.SaveConfig(cfg); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) addModule(c echo.Context) error {
	semester, err := formInt(c, "semester")
	if err != nil {
		return err
	}
	name := c.FormValue("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	_, p, err := h.load()
	if err != nil {
		return err
	}
	p.AddModule(semester, name)
	if err := h.store.SaveProgram(p); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) addCourse(c echo.Context) error {
	semester, err := formInt(c, "semester")
	if err != nil {
		return err
	}
	module := c.FormValue("module")
	name := c.FormValue("name")
	if module == "" || name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "module and name are required")
	}
	ects, err := formFloat(c, "ects")
	if err != nil {
		return err
	}
	kind := c.FormValue("kind")
	if kind == "" {
		kind = study.KindExam
	}
	start, err := formDate(c, "start")
	if err != nil {
		return err
	}

	_, p, err := h.load()
	if err != nil {
		return err
	}
	p.AddCourse(semester, module, name, ects, kind, start)
	if err := h.store.SaveProgram(p); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) moveCourse(c echo.Context) error {
	fromSemester, err := formInt(c, "from_semester")
	if err != nil {
		return err
	}
	toSemester, err := formInt(c, "to_semester")
	if err != nil {
		return err
	}
	fromModule := c.FormValue("from_module")
	toModule := c.FormValue("to_module")
	name := c.FormValue("name")
	if fromModule == "" || toModule == "" || name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "module and course names are required")
	}

	_, p, err := h.load()
	if err != nil {
		return err
	}
	if _, err := p.MoveCourse(fromSemester, fromModule, name, toSemester, toModule); err != nil {
		return notFoundOr(err)
	}
	if err := h.store.SaveProgram(p); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) deleteCourse(c echo.Context) error {
	semester, err := formInt(c, "semester")
	if err != nil {
		return err
	}
	module := c.FormValue("module")
	name := c.FormValue("name")

	_, p, err := h.load()
	if err != nil {
		return err
	}
	if !p.DeleteCourse(semester, module, name) {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}
	if err := h.store.SaveProgram(p); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Updates a course's attributes, moving it first when a target
// location is given. Empty fields leave the current value alone.
func (h *handler) editCourse(c echo.Context) error {
	semester, err := formInt(c, "semester")
	if err != nil {
		return err
	}
	module := c.FormValue("module")
	name := c.FormValue("course")
	if module == "" || name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "module and course are required")
	}

	_, p, err := h.load()
	if err != nil {
		return err
	}
	course, err := p.FindCourse(semester, module, name)
	if err != nil {
		return notFoundOr(err)
	}

	toSemester := semester
	if c.FormValue("to_semester") != "" {
		if toSemester, err = formInt(c, "to_semester"); err != nil {
			return err
		}
	}
	toModule := module
	if v := c.FormValue("to_module"); v != "" {
		toModule = v
	}
	if toSemester != semester || toModule != module {
		if _, err := p.MoveCourse(semester, module, name, toSemester, toModule); err != nil {
			return notFoundOr(err)
		}
	}

	if v := c.FormValue("new_name"); v != "" {
		course.Name = v
	}
	if c.FormValue("ects") != "" {
		ects, err := formFloat(c, "ects")
		if err != nil {
			return err
		}
		course.ECTS = ects
	}
	if v := c.FormValue("kind"); v != "" {
		course.Assessment.Kind = v
	}
	if c.FormValue("start") != "" {
		start, err := formDate(c, "start")
		if err != nil {
			return err
		}
		course.Start = start
	}

	if err := h.store.SaveProgram(p); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Records a graded or pass/fail result for a course. A "grade" form
// value records a grade; "passed" records an ungraded outcome; a
// "date" on its own updates just the assessment date.
func (h *handler) recordResult(c echo.Context) error {
	semester, err := formInt(c, "semester")
	if err != nil {
		return err
	}
	module := c.FormValue("module")
	name := c.FormValue("course")

	_, p, err := h.load()
	if err != nil {
		return err
	}
	course, err := p.FindCourse(semester, module, name)
	if err != nil {
		return notFoundOr(err)
	}

	date, err := formDate(c, "date")
	if err != nil {
		return err
	}

	switch {
	case c.FormValue("grade") != "":
		grade, err := formFloat(c, "grade")
		if err != nil {
			return err
		}
		if err := course.RecordGrade(grade, date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	case c.FormValue("passed") != "":
		passed, err := strconv.ParseBool(c.FormValue("passed"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "passed must be a boolean")
		}
		course.RecordPassed(passed, date)
	case !date.IsZero():
		course.Assessment.Date = date
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "grade, passed, or date is required")
	}

	if err := h.store.SaveProgram(p); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) clearResult(c echo.Context) error {
	semester, err := formInt(c, "semester")
	if err != nil {
		return err
	}

	_, p, err := h.load()
	if err != nil {
		return err
	}
	course, err := p.FindCourse(semester, c.FormValue("module"), c.FormValue("course"))
	if err != nil {
		return notFoundOr(err)
	}
	course.ClearResult()

	if err := h.store.SaveProgram(p); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) program(c echo.Context) error {
	_, p, err := h.load()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handler) metrics(c echo.Context) error {
	targets, p, err := h.load()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, study.ComputeMetrics(p, targets.TotalECTS, targets.TotalExams))
}

func (h *handler) goalResults(c echo.Context) error {
	targets, p, err := h.load()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.evaluate(targets, p))
}

func (h *handler) getConfig(c echo.Context) error {
	cfg, err := h.store.LoadConfig()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *handler) putConfig(c echo.Context) error {
	var cfg goals.Config
	if err := c.Bind(&cfg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid goals document")
	}
	if err := h.store.SaveConfig(cfg); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

func formInt(c echo.Context, field string) (int, error) {
	v, err := strconv.Atoi(c.FormValue(field))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, field+" must be an integer")
	}
	return v, nil
}

func formFloat(c echo.Context, field string) (float64, error) {
	v, err := strconv.ParseFloat(c.FormValue(field), 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, field+" must be a number")
	}
	return v, nil
}

// Parses an optional YYYY-MM-DD form value. Empty means unset.
func formDate(c echo.Context, field string) (study.Date, error) {
	raw := c.FormValue(field)
	if raw == "" {
		return study.Date{}, nil
	}
	d, err := study.ParseDate(raw)
	if err != nil {
		return study.Date{}, echo.NewHTTPError(http.StatusBadRequest, field+" must be a date (YYYY-MM-DD)")
	}
	return d, nil
}

func notFoundOr(err error) error {
	switch {
	case errors.Is(err, study.ErrCourseNotFound),
		errors.Is(err, study.ErrModuleNotFound),
		errors.Is(err, study.ErrSemesterNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return err
	}
}
