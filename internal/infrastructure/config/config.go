// Package config provides configuration loading for the lessonctl
// application. Settings come from an optional course.yaml in the working
// directory, overridden by environment variables, with defaults for
// everything left unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	// EnvLogLevel is the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvMainBranch overrides the course main branch name.
	EnvMainBranch = "LESSONCTL_MAIN_BRANCH"

	// EnvLessonRoot overrides the lesson material directory.
	EnvLessonRoot = "LESSONCTL_LESSON_ROOT"
)

// Default values.
const (
	DefaultLogLevel   = "warn"
	DefaultMainBranch = "main"
	DefaultLessonRoot = "lessons"

	// ConfigFileName is the optional per-course configuration file looked
	// up in the working directory.
	ConfigFileName = "course.yaml"
)

// defaultUpstreamOrgs are the organizations recognized as course
// upstreams. Course files can add their own on top.
var defaultUpstreamOrgs = []string{"courselab", "courselab-archive"}

// defaultEntrypoints maps entry file extensions to the command that runs
// them. The entry file path is appended as the final argument.
var defaultEntrypoints = map[string][]string{
	".go": {"go", "run"},
	".js": {"node"},
	".ts": {"npx", "tsx"},
	".py": {"python3"},
	".sh": {"bash"},
}

// Configuration errors.
var (
	// ErrConfigUnreadable indicates the course file exists but could not
	// be read.
	ErrConfigUnreadable = errors.New("course configuration could not be read")

	// ErrConfigInvalid indicates the course file is not valid YAML.
	ErrConfigInvalid = errors.New("course configuration is not valid YAML")
)

// InvalidValueError indicates a configuration field holds an unusable
// value.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for configuration field %s", e.Value, e.Field)
}

// Config holds all application configuration.
type Config struct {
	// CourseName is the display name of the course.
	CourseName string `yaml:"course_name"`

	// MainBranch is the branch carrying the published lesson history.
	MainBranch string `yaml:"main_branch"`

	// LessonRoot is the directory holding lesson material, relative to
	// the working directory.
	LessonRoot string `yaml:"lesson_root"`

	// UpstreamOrgs are extra organizations recognized as course
	// upstreams, added to the built-in ones.
	UpstreamOrgs []string `yaml:"upstream_orgs"`

	// Entrypoints maps entry file extensions to runner commands,
	// overriding the built-in table per extension.
	Entrypoints map[string][]string `yaml:"entrypoints"`

	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Load reads the configuration for the course checked out at dir. A
// missing course.yaml is fine; an unreadable or invalid one is not.
func Load(fs afero.Fs, dir string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(dir, ConfigFileName)
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}
	if exists {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, &InvalidValueError{Field: "log_level", Value: cfg.LogLevel}
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvMainBranch); v != "" {
		cfg.MainBranch = v
	}
	if v := os.Getenv(EnvLessonRoot); v != "" {
		cfg.LessonRoot = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.MainBranch == "" {
		cfg.MainBranch = DefaultMainBranch
	}
	if cfg.LessonRoot == "" {
		cfg.LessonRoot = DefaultLessonRoot
	}

	cfg.UpstreamOrgs = append(append([]string{}, defaultUpstreamOrgs...), cfg.UpstreamOrgs...)

	entrypoints := make(map[string][]string, len(defaultEntrypoints))
	for ext, argv := range defaultEntrypoints {
		entrypoints[ext] = argv
	}
	for ext, argv := range cfg.Entrypoints {
		entrypoints[ext] = argv
	}
	cfg.Entrypoints = entrypoints
}
