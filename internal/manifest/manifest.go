package manifest

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (

	// Port declared when the manifest does not set one.
	DefaultPort = 8000

	// Worker process count used when the manifest does not set one.
	DefaultWorkers = 2

	// Account created when the manifest does not set one.
	defaultUserName = "app"
	defaultUserUID  = 1001
)

// Describes how to build and launch one application image.
//
// A manifest is the declarative equivalent of a Dockerfile: a base image,
// a dependency manifest that must exist in the source tree, an ordered list
// of build steps, an environment file materialized once at build time, a
// non-root account, and the launch command.
type Manifest struct {
	App     string            `yaml:"app" validate:"required"`             // Application name, used for image tags and container IDs.
	Base    string            `yaml:"base" validate:"required"`            // Path to the OCI archive of the base runtime image.
	Deps    string            `yaml:"deps" validate:"required"`            // Dependency manifest path, relative to the source root.
	Workdir string            `yaml:"workdir"`                             // Working directory inside the image.
	Steps   []Step            `yaml:"steps"`                               // Build steps executed in order.
	EnvFile EnvFile           `yaml:"envfile"`                             // Environment file template, copied only if the target is absent.
	User    Account           `yaml:"user"`                                // Non-root account the server process runs as.
	Port    int               `yaml:"port" validate:"min=1,max=65535"`     // Port the server binds, declared via env and image metadata.
	Workers int               `yaml:"workers" validate:"min=1"`            // Worker process count passed to the launch command.
	Env     map[string]string `yaml:"env"`                                 // Additional image environment variables.
	Command []string          `yaml:"command" validate:"required,min=1"`   // Entrypoint argv for the launched container.
}

// A single build step.
//
// Run and Copy are operations; Env, Workdir, and Shell are modifiers. A step
// carrying only modifiers updates the persistent build state; modifiers on an
// operation step apply to that operation alone.
type Step struct {
	Run     string            `yaml:"run,omitempty"`
	Copy    string            `yaml:"copy,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Workdir string            `yaml:"workdir,omitempty"`
	Shell   string            `yaml:"shell,omitempty"`
}

// Template and target of the conditional environment file copy.
//
// At build time the template is copied to the target path inside the image
// only when the target does not already exist. An existing target is left
// byte-for-byte untouched.
type EnvFile struct {
	Template string `yaml:"template"`
	Target   string `yaml:"target"`
}

// A non-root account created in the image.
type Account struct {
	Name string `yaml:"name" validate:"required"`
	UID  int    `yaml:"uid" validate:"min=1"`
}

// Reads and parses a manifest file, applying defaults.
//
// Unknown fields are rejected so that typos fail the build instead of being
// silently ignored.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestRead, err)
	}
	return Parse(data)
}

// Parses manifest bytes, applying defaults.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}

	m.applyDefaults()
	return &m, nil
}

// Fills unset fields with their defaults.
func (m *Manifest) applyDefaults() {
	if m.Port == 0 {
		m.Port = DefaultPort
	}
	if m.Workers == 0 {
		m.Workers = DefaultWorkers
	}
	if m.User.Name == "" {
		m.User.Name = defaultUserName
	}
	if m.User.UID == 0 {
		m.User.UID = defaultUserUID
	}
}

// Checks the manifest for structural and semantic problems.
//
// Returns an error for violations that must abort the build. Non-fatal
// findings, such as a command that hardcodes a port different from the
// declared one, are returned as warnings: intent is ambiguous there, so the
// mismatch is surfaced rather than silently corrected.
func (m *Manifest) Validate() ([]string, error) {
	if err := validate.Struct(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}

	for _, step := range m.Steps {
		if step.Run != "" && step.Copy != "" {
			return nil, fmt.Errorf("%w: step has both run and copy", ErrManifestInvalid)
		}
	}

	if (m.EnvFile.Template == "") != (m.EnvFile.Target == "") {
		return nil, fmt.Errorf("%w: envfile requires both template and target", ErrManifestInvalid)
	}

	var warnings []string
	if p, ok := commandPort(m.Command); ok && p != m.Port {
		warnings = append(warnings, fmt.Sprintf(
			"command hardcodes port %d but manifest declares %d; the PORT variable will not change the bind port", p, m.Port))
	}

	return warnings, nil
}

// Environment entries set on the image config.
//
// PORT always reflects the declared port; manifest env entries are appended
// after it and cannot shadow it.
func (m *Manifest) Environ() []string {
	env := []string{fmt.Sprintf("PORT=%d", m.Port)}
	for k, v := range m.Env {
		if k == "PORT" {
			continue
		}
		env = append(env, k+"="+v)
	}
	return env
}

// OCI ExposedPorts key for the declared port (e.g., "8000/tcp").
func (m *Manifest) ExposedPort() string {
	return fmt.Sprintf("%d/tcp", m.Port)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Extracts a port literal from a launch command, if one is present.
//
// Recognizes "--port N" / "-p N" flag pairs, "--port=N" forms, and
// "host:port" address tokens. Returns false when the command carries no
// recognizable port.
func commandPort(command []string) (int, bool) {
	for i, arg := range command {
		switch {
		case arg == "--port" || arg == "-p":
			if i+1 < len(command) {
				if p, err := strconv.Atoi(command[i+1]); err == nil {
					return p, true
				}
			}
		case strings.HasPrefix(arg, "--port="):
			if p, err := strconv.Atoi(strings.TrimPrefix(arg, "--port=")); err == nil {
				return p, true
			}
		case strings.Contains(arg, ":"):
			if _, portStr, err := net.SplitHostPort(arg); err == nil {
				if p, err := strconv.Atoi(portStr); err == nil {
					return p, true
				}
			}
		}
	}
	return 0, false
}
