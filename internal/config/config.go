package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/eeep-admissions/pkg/applicants"
	"github.com/jakechorley/eeep-admissions/pkg/core/allocator"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// Course is one offered course and its optional seat table
type Course struct {
	Name     string          `yaml:"name" validate:"required"`
	Capacity *model.Capacity `yaml:"capacity,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Courses         []Course        `yaml:"courses" validate:"required,min=1,dive"`
	DefaultCapacity *model.Capacity `yaml:"defaultCapacity,omitempty"`

	RegionKeyword        string   `yaml:"regionKeyword,omitempty"`
	PrivateSchoolKeyword string   `yaml:"privateSchoolKeyword,omitempty"`
	DisabilityKeywords   []string `yaml:"disabilityKeywords,omitempty"`
	RequireRegistration  *bool    `yaml:"requireRegistration,omitempty"`
	ScoreEpsilon         float64  `yaml:"scoreEpsilon,omitempty" validate:"gte=0"`

	// ApplicantFormID reads responses straight from the application form; it takes precedence over the sheet
	ApplicantFormID   string `yaml:"applicantFormID,omitempty"`
	ApplicantSheetID  string `yaml:"applicantSheetID,omitempty"`
	ApplicantSheetTab string `yaml:"applicantSheetTab,omitempty" validate:"required_with=ApplicantSheetID"`
	ResultSheetID     string `yaml:"resultSheetID,omitempty"`

	// NotifyEmails receive a summary email after the results are published
	NotifyEmails []string `yaml:"notifyEmails,omitempty" validate:"dive,email"`

	DatabaseURL string `yaml:"databaseURL,omitempty"`
}

const (
	defaultRegionKeyword        = "CENTRO"
	defaultPrivateSchoolKeyword = "PRIVADA"
)

var defaultDisabilityKeywords = []string{"DEFICIENCIA", "PCD"}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from admission_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "admission_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Validate validates the configuration struct and rejects duplicate course names
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Courses))
	for i, course := range cfg.Courses {
		key := applicants.NormalizeText(course.Name)
		if seen[key] {
			return fmt.Errorf("duplicate course in courses[%d]: %s", i, course.Name)
		}
		seen[key] = true
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.DefaultCapacity == nil {
		capacity := model.DefaultCapacity
		c.DefaultCapacity = &capacity
	}
	if c.RegionKeyword == "" {
		c.RegionKeyword = defaultRegionKeyword
	}
	if c.PrivateSchoolKeyword == "" {
		c.PrivateSchoolKeyword = defaultPrivateSchoolKeyword
	}
	if len(c.DisabilityKeywords) == 0 {
		c.DisabilityKeywords = append([]string(nil), defaultDisabilityKeywords...)
	}
	if c.RequireRegistration == nil {
		required := true
		c.RequireRegistration = &required
	}
	if c.ScoreEpsilon == 0 {
		c.ScoreEpsilon = allocator.DefaultScoreEpsilon
	}
}

// CourseNames returns the configured course names in file order
func (c *Config) CourseNames() []string {
	names := make([]string, len(c.Courses))
	for i, course := range c.Courses {
		names[i] = course.Name
	}
	return names
}

// CapacityFor returns the seat table of a course, falling back to the default table
func (c *Config) CapacityFor(course string) model.Capacity {
	for _, configured := range c.Courses {
		if configured.Name == course && configured.Capacity != nil {
			return *configured.Capacity
		}
	}
	if c.DefaultCapacity != nil {
		return *c.DefaultCapacity
	}
	return model.DefaultCapacity
}

// ApplicantOptions returns the row intake options derived from the configuration
func (c *Config) ApplicantOptions() applicants.Options {
	required := true
	if c.RequireRegistration != nil {
		required = *c.RequireRegistration
	}

	return applicants.Options{
		Courses:              c.CourseNames(),
		RegionKeyword:        c.RegionKeyword,
		PrivateSchoolKeyword: c.PrivateSchoolKeyword,
		DisabilityKeywords:   c.DisabilityKeywords,
		RequireRegistration:  required,
	}
}

// findConfigFile searches for admission_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "admission_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "admission_config.yaml"
	if env != "" {
		configFileName = "admission_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
