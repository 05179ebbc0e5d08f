package model

import "time"

const (
	SkillsName       = "skills"
	ProjectsName     = "projects"
	CertificatesName = "certificates"

	SkillsInterval       = 4 * time.Second
	ProjectsInterval     = 3 * time.Second
	CertificatesInterval = 3 * time.Second

	SkillsTransition = 600 * time.Millisecond
	SlideTransition  = 800 * time.Millisecond
)

// SkillsRotation rotates skill categories. Only the dots jump; there are no arrows.
func SkillsRotation() RotationConfig {
	return RotationConfig{
		Name:               SkillsName,
		Interval:           SkillsInterval,
		TransitionDuration: SkillsTransition,
		Controls: Controls{
			HoverPause: true,
			Indicators: true,
		},
	}
}

// ProjectsRotation rotates project slides and listens to arrow keys anywhere in the window.
func ProjectsRotation() RotationConfig {
	return RotationConfig{
		Name:               ProjectsName,
		Interval:           ProjectsInterval,
		TransitionDuration: SlideTransition,
		Controls: Controls{
			HoverPause: true,
			Indicators: true,
			Arrows:     true,
			Keyboard:   KeyboardGlobal,
		},
	}
}

// CertificatesRotation rotates certificate slides. Arrow keys are left alone while
// a text field has focus so they keep working for editing.
func CertificatesRotation() RotationConfig {
	return RotationConfig{
		Name:               CertificatesName,
		Interval:           CertificatesInterval,
		TransitionDuration: SlideTransition,
		Controls: Controls{
			HoverPause: true,
			Indicators: true,
			Arrows:     true,
			Keyboard:   KeyboardUnlessEditing,
		},
	}
}
