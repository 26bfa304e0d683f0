package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tommorgenstern/gradus/internal/goals"
	"github.com/tommorgenstern/gradus/internal/paths"
	"github.com/tommorgenstern/gradus/internal/study"
)

// Data file names inside the store directory.
const (
	programFile = "program.json"
	goalsFile   = "goals.json"
)

// File-backed persistence for the program tree and the goals file.
//
// Reads of missing files return zero values instead of errors; writes
// go through a temp file and rename so a crash never leaves a torn
// data file behind.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) ProgramPath() string { return filepath.Join(s.dir, programFile) }
func (s *Store) GoalsPath() string   { return filepath.Join(s.dir, goalsFile) }

// Loads the persisted program. A missing file yields a fresh program
// built from the given targets.
func (s *Store) LoadProgram(t goals.Targets) (*study.Program, error) {
	var p study.Program
	found, err := s.read(s.ProgramPath(), &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return goals.NewProgram(t), nil
	}
	return &p, nil
}

func (s *Store) SaveProgram(p *study.Program) error {
	return s.write(s.ProgramPath(), p)
}

// Loads the goals file. A missing file yields the zero config, which
// resolves to the built-in targets.
func (s *Store) LoadConfig() (goals.Config, error) {
	var cfg goals.Config
	if _, err := s.read(s.GoalsPath(), &cfg); err != nil {
		return goals.Config{}, err
	}
	return cfg, nil
}

func (s *Store) SaveConfig(cfg goals.Config) error {
	return s.write(s.GoalsPath(), cfg)
}

func (s *Store) read(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(path), err)
	}
	return true, nil
}

func (s *Store) write(path string, v any) error {
	if err := os.MkdirAll(s.dir, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
