package preferences

import (
	"time"

	"portfolio/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	SkillsInterval       time.Duration
	ProjectsInterval     time.Duration
	CertificatesInterval time.Duration

	WelcomeToast bool
	ContentPath  string
}

// DefaultSettings returns default settings for the showcase.
func DefaultSettings() Settings {
	return Settings{
		SkillsInterval:       model.SkillsInterval,
		ProjectsInterval:     model.ProjectsInterval,
		CertificatesInterval: model.CertificatesInterval,
		WelcomeToast:         true,
	}
}

// SkillsConfig converts settings to the skills rotation config.
func (settings Settings) SkillsConfig() model.RotationConfig {
	return model.SkillsRotation().WithInterval(settings.SkillsInterval)
}

// ProjectsConfig converts settings to the projects rotation config.
func (settings Settings) ProjectsConfig() model.RotationConfig {
	return model.ProjectsRotation().WithInterval(settings.ProjectsInterval)
}

// CertificatesConfig converts settings to the certificates rotation config.
func (settings Settings) CertificatesConfig() model.RotationConfig {
	return model.CertificatesRotation().WithInterval(settings.CertificatesInterval)
}
