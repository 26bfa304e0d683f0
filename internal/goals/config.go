package goals

import (
	"time"

	"github.com/tommorgenstern/gradus/internal/study"
)

// Built-in degree targets, used wherever the goals file leaves a value
// unset.
const (
	DefaultProgramName = "B.Sc. Software Engineering"
	DefaultMaxYears    = 3.0
	DefaultMaxAverage  = 1.9
	DefaultExamDays    = 21.0
	DefaultOtherDays   = 42.0
	DefaultMinShare    = 0.10
	DefaultTotalECTS   = 180.0
	DefaultTotalExams  = 36
)

// DefaultProgramStart is the default start date of the tracked degree.
var DefaultProgramStart = study.NewDate(2023, time.December, 5)

// Resolved degree targets after defaults were applied.
type Targets struct {
	ProgramName  string
	ProgramStart study.Date
	MaxYears     float64
	MaxAverage   float64
	ExamDays     float64
	OtherDays    float64
	MinShare     float64
	TotalECTS    float64
	TotalExams   int
}

// Persisted shape of the goals file. Every field is optional; missing
// values fall back to the built-in defaults.
type Config struct {
	Program ProgramConfig `json:"program,omitzero"`
	Goals   GoalsConfig   `json:"goals,omitzero"`
}

type ProgramConfig struct {
	Name       string     `json:"name,omitempty"`
	Start      study.Date `json:"start,omitzero"`
	TotalECTS  *float64   `json:"total_ects,omitempty"`
	TotalExams *int       `json:"total_exams,omitempty"`
}

type GoalsConfig struct {
	StudyTime     *ThresholdConfig  `json:"study_time,omitempty"`
	GradeAverage  *ThresholdConfig  `json:"grade_average,omitempty"`
	Excellence    *ExcellenceConfig `json:"excellence,omitempty"`
	ExamDuration  *ThresholdConfig  `json:"exam_duration,omitempty"`
	OtherDuration *ThresholdConfig  `json:"other_duration,omitempty"`

	// Duration is the combined predecessor of ExamDuration and
	// OtherDuration. It fans out into both unless each has its own
	// entry, so old goal files keep working.
	Duration *DurationConfig `json:"duration,omitempty"`
}

type ThresholdConfig struct {
	Max float64 `json:"max"`
}

type ExcellenceConfig struct {
	MinShare float64 `json:"min_share"`
}

type DurationConfig struct {
	ExamDays  float64 `json:"exam_days"`
	OtherDays float64 `json:"other_days"`
}

// Resolves the configured targets, applying defaults for anything the
// config leaves unset.
func (c Config) Targets() Targets {
	t := Targets{
		ProgramName:  DefaultProgramName,
		ProgramStart: DefaultProgramStart,
		MaxYears:     DefaultMaxYears,
		MaxAverage:   DefaultMaxAverage,
		ExamDays:     DefaultExamDays,
		OtherDays:    DefaultOtherDays,
		MinShare:     DefaultMinShare,
		TotalECTS:    DefaultTotalECTS,
		TotalExams:   DefaultTotalExams,
	}

	if c.Program.Name != "" {
		t.ProgramName = c.Program.Name
	}
	if !c.Program.Start.IsZero() {
		t.ProgramStart = c.Program.Start
	}
	if c.Program.TotalECTS != nil {
		t.TotalECTS = *c.Program.TotalECTS
	}
	if c.Program.TotalExams != nil {
		t.TotalExams = *c.Program.TotalExams
	}
	if c.Goals.StudyTime != nil {
		t.MaxYears = c.Goals.StudyTime.Max
	}
	if c.Goals.GradeAverage != nil {
		t.MaxAverage = c.Goals.GradeAverage.Max
	}
	if c.Goals.Excellence != nil {
		t.MinShare = c.Goals.Excellence.MinShare
	}
	if c.Goals.ExamDuration != nil {
		t.ExamDays = c.Goals.ExamDuration.Max
	} else if c.Goals.Duration != nil {
		t.ExamDays = c.Goals.Duration.ExamDays
	}
	if c.Goals.OtherDuration != nil {
		t.OtherDays = c.Goals.OtherDuration.Max
	} else if c.Goals.Duration != nil {
		t.OtherDays = c.Goals.Duration.OtherDays
	}

	return t
}

// Builds the goal set from the resolved targets.
func FromTargets(t Targets) []Goal {
	return []Goal{
		StudyTime{MaxYears: t.MaxYears},
		GradeAverage{MaxAverage: t.MaxAverage},
		Excellence{MinShare: t.MinShare},
		ExamDuration{MaxDays: t.ExamDays},
		OtherDuration{MaxDays: t.OtherDays},
	}
}

// Returns a fresh program carrying the configured name and start date.
func NewProgram(t Targets) *study.Program {
	return &study.Program{Name: t.ProgramName, Start: t.ProgramStart}
}
