package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/eeep-admissions/pkg/core/allocator"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admission_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Courses: []Course{
			{Name: "Enfermagem"},
			{Name: "Informática", Capacity: &model.Capacity{PublicBroad: 40}},
		},
		ApplicantSheetID:  "sheet123",
		ApplicantSheetTab: "Respostas",
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_NoCourses(t *testing.T) {
	err := Validate(&Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_CourseWithoutName(t *testing.T) {
	err := Validate(&Config{Courses: []Course{{Name: ""}}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NegativeCapacity(t *testing.T) {
	cfg := &Config{
		Courses: []Course{{Name: "Redes", Capacity: &model.Capacity{Disability: -1}}},
	}

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SheetWithoutTab(t *testing.T) {
	cfg := &Config{
		Courses:          []Course{{Name: "Redes"}},
		ApplicantSheetID: "sheet123",
	}

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ApplicantSheetTab")
}

func TestValidate_InvalidNotifyEmail(t *testing.T) {
	cfg := &Config{
		Courses:      []Course{{Name: "Redes"}},
		NotifyEmails: []string{"secretaria@escola.br", "not-an-email"},
	}

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NotifyEmails[1]")
}

func TestValidate_DuplicateCourse(t *testing.T) {
	cfg := &Config{
		Courses: []Course{{Name: "Informática"}, {Name: "INFORMATICA"}},
	}

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate course in courses[1]")
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
courses:
  - name: "Enfermagem"
  - name: "Informática"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Enfermagem", "Informática"}, cfg.CourseNames())
	require.NotNil(t, cfg.DefaultCapacity)
	assert.Equal(t, model.DefaultCapacity, *cfg.DefaultCapacity)
	assert.Equal(t, "CENTRO", cfg.RegionKeyword)
	assert.Equal(t, "PRIVADA", cfg.PrivateSchoolKeyword)
	assert.Equal(t, []string{"DEFICIENCIA", "PCD"}, cfg.DisabilityKeywords)
	require.NotNil(t, cfg.RequireRegistration)
	assert.True(t, *cfg.RequireRegistration)
	assert.Equal(t, allocator.DefaultScoreEpsilon, cfg.ScoreEpsilon)
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	path := writeConfig(t, `
courses:
  - name: "Enfermagem"
    capacity:
      disability: 1
      publicRegional: 5
      publicBroad: 12
      privateRegional: 1
      privateBroad: 3
  - name: "Redes"
defaultCapacity:
  disability: 2
  publicRegional: 8
  publicBroad: 20
  privateRegional: 2
  privateBroad: 4
regionKeyword: "MESSEJANA"
privateSchoolKeyword: "PARTICULAR"
disabilityKeywords: ["PCD"]
requireRegistration: false
scoreEpsilon: 0.001
applicantSheetID: "sheet123"
applicantSheetTab: "Respostas"
resultSheetID: "result456"
databaseURL: "postgres://localhost/admissions"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, model.Capacity{Disability: 1, PublicRegional: 5, PublicBroad: 12, PrivateRegional: 1, PrivateBroad: 3}, cfg.CapacityFor("Enfermagem"))
	assert.Equal(t, model.Capacity{Disability: 2, PublicRegional: 8, PublicBroad: 20, PrivateRegional: 2, PrivateBroad: 4}, cfg.CapacityFor("Redes"))
	assert.Equal(t, "MESSEJANA", cfg.RegionKeyword)
	assert.InDelta(t, 0.001, cfg.ScoreEpsilon, 1e-12)
	assert.Equal(t, "result456", cfg.ResultSheetID)
	assert.Equal(t, "postgres://localhost/admissions", cfg.DatabaseURL)

	opts := cfg.ApplicantOptions()
	assert.False(t, opts.RequireRegistration)
	assert.Equal(t, "PARTICULAR", opts.PrivateSchoolKeyword)
	assert.Equal(t, []string{"PCD"}, opts.DisabilityKeywords)
	assert.Equal(t, []string{"Enfermagem", "Redes"}, opts.Courses)
}

func TestCapacityFor_UnknownCourseUsesDefault(t *testing.T) {
	cfg := &Config{Courses: []Course{{Name: "Redes"}}}

	assert.Equal(t, model.DefaultCapacity, cfg.CapacityFor("Química"))
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `
regionKeyword: "CENTRO"
  invalid indentation
courses: []
`)

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/admission_config.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_FindsFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admission_config.test.yaml"), []byte("courses:\n  - name: \"Redes\"\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadWithEnv("test")

	require.NoError(t, err)
	assert.Equal(t, []string{"Redes"}, cfg.CourseNames())
}
