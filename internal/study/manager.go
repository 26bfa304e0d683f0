package study

import "fmt"

// Returns the semester with the given number, creating it (and any
// ordering gap before it) if missing.
func (p *Program) Semester(number int) *Semester {
	for _, s := range p.Semesters {
		if s.Number == number {
			return s
		}
	}
	s := &Semester{Number: number}
	p.Semesters = append(p.Semesters, s)
	sortSemesters(p.Semesters)
	return s
}

// Returns the named module in the given semester, creating both if
// missing. Adding an existing module is a no-op.
func (p *Program) AddModule(semester int, name string) *Module {
	s := p.Semester(semester)
	for _, m := range s.Modules {
		if m.Name == name {
			return m
		}
	}
	m := &Module{Name: name}
	s.Modules = append(s.Modules, m)
	return m
}

// Adds a course to the named module, creating semester and module as
// needed. Re-adding an existing course returns it unchanged.
func (p *Program) AddCourse(semester int, module, name string, ects float64, kind string, start Date) *Course {
	m := p.AddModule(semester, module)
	for _, c := range m.Courses {
		if c.Name == name {
			return c
		}
	}
	c := &Course{
		Name:       name,
		ECTS:       ects,
		Start:      start,
		Assessment: Assessment{Kind: kind},
	}
	m.Courses = append(m.Courses, c)
	return c
}

// Finds a course by semester number, module name and course name.
func (p *Program) FindCourse(semester int, module, name string) (*Course, error) {
	for _, s := range p.Semesters {
		if s.Number != semester {
			continue
		}
		for _, m := range s.Modules {
			if m.Name != module {
				continue
			}
			for _, c := range m.Courses {
				if c.Name == name {
					return c, nil
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, module)
	}
	return nil, fmt.Errorf("%w: %d", ErrSemesterNotFound, semester)
}

// Moves a course to another semester and module, creating the target
// as needed and pruning the source if it became empty.
func (p *Program) MoveCourse(fromSemester int, fromModule, name string, toSemester int, toModule string) (*Course, error) {
	c, err := p.FindCourse(fromSemester, fromModule, name)
	if err != nil {
		return nil, err
	}
	p.removeCourse(fromSemester, fromModule, name)

	target := p.AddModule(toSemester, toModule)
	target.Courses = append(target.Courses, c)
	return c, nil
}

// Deletes a course and prunes its module and semester if they became
// empty. Reports whether a course was removed.
func (p *Program) DeleteCourse(semester int, module, name string) bool {
	return p.removeCourse(semester, module, name)
}

// Records a grade for the course, clearing any explicit pass mark.
func (c *Course) RecordGrade(grade float64, date Date) error {
	if grade < BestGrade || grade > WorstGrade {
		return fmt.Errorf("%w: %.1f", ErrInvalidGrade, grade)
	}
	c.Assessment.Grade = &grade
	c.Assessment.Date = date
	c.Assessment.Passed = nil
	return nil
}

// Records an ungraded pass or fail for the course, clearing any grade.
func (c *Course) RecordPassed(passed bool, date Date) {
	c.Assessment.Passed = &passed
	c.Assessment.Date = date
	c.Assessment.Grade = nil
}

// Clears any recorded outcome of the course.
func (c *Course) ClearResult() {
	c.Assessment.Grade = nil
	c.Assessment.Passed = nil
	c.Assessment.Date = Date{}
}

func (p *Program) removeCourse(semester int, module, name string) bool {
	for si, s := range p.Semesters {
		if s.Number != semester {
			continue
		}
		for mi, m := range s.Modules {
			if m.Name != module {
				continue
			}
			for ci, c := range m.Courses {
				if c.Name != name {
					continue
				}
				m.Courses = append(m.Courses[:ci], m.Courses[ci+1:]...)
				if len(m.Courses) == 0 {
					s.Modules = append(s.Modules[:mi], s.Modules[mi+1:]...)
				}
				if len(s.Modules) == 0 {
					p.Semesters = append(p.Semesters[:si], p.Semesters[si+1:]...)
				}
				return true
			}
		}
	}
	return false
}

func sortSemesters(semesters []*Semester) {
	for i := 1; i < len(semesters); i++ {
		for j := i; j > 0 && semesters[j-1].Number > semesters[j].Number; j-- {
			semesters[j-1], semesters[j] = semesters[j], semesters[j-1]
		}
	}
}
