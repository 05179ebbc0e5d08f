package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"portfolio/internal/platform"
	"portfolio/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	SkillsIntervalSeconds       int    `yaml:"skills_interval_seconds"`
	ProjectsIntervalSeconds     int    `yaml:"projects_interval_seconds"`
	CertificatesIntervalSeconds int    `yaml:"certificates_interval_seconds"`
	WelcomeToast                *bool  `yaml:"welcome_toast,omitempty"`
	ContentPath                 string `yaml:"content_path,omitempty"`
}

// SettingsStore reads and writes preferences in a directory.
type SettingsStore struct {
	dir string
}

// NewSettingsStore stores settings under the OS config directory for appName.
func NewSettingsStore(appName string) (*SettingsStore, error) {
	dir, err := platform.ConfigDir(appName)
	if err != nil {
		return nil, fmt.Errorf("resolve settings dir: %w", err)
	}
	return &SettingsStore{dir: dir}, nil
}

// NewSettingsStoreAt stores settings in dir.
func NewSettingsStoreAt(dir string) *SettingsStore {
	return &SettingsStore{dir: dir}
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return filepath.Join(store.dir, settingsFileName)
}

// Load reads user preferences from YAML.
// If the settings file does not exist, default settings are returned.
func (store *SettingsStore) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *SettingsStore) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	welcome := settings.WelcomeToast
	fileData := yamlSettings{
		SkillsIntervalSeconds:       int(settings.SkillsInterval / time.Second),
		ProjectsIntervalSeconds:     int(settings.ProjectsInterval / time.Second),
		CertificatesIntervalSeconds: int(settings.CertificatesInterval / time.Second),
		WelcomeToast:                &welcome,
		ContentPath:                 settings.ContentPath,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.Path(), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.SkillsIntervalSeconds > 0 {
		settings.SkillsInterval = time.Duration(fileData.SkillsIntervalSeconds) * time.Second
	}
	if fileData.ProjectsIntervalSeconds > 0 {
		settings.ProjectsInterval = time.Duration(fileData.ProjectsIntervalSeconds) * time.Second
	}
	if fileData.CertificatesIntervalSeconds > 0 {
		settings.CertificatesInterval = time.Duration(fileData.CertificatesIntervalSeconds) * time.Second
	}
	if fileData.WelcomeToast != nil {
		settings.WelcomeToast = *fileData.WelcomeToast
	}
	settings.ContentPath = fileData.ContentPath
}
