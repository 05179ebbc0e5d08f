package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsMatchConfigurationTable(t *testing.T) {
	skills := SkillsRotation()
	require.NoError(t, skills.Validate())
	assert.Equal(t, 4*time.Second, skills.Interval)
	assert.Equal(t, 600*time.Millisecond, skills.TransitionDuration)
	assert.False(t, skills.Controls.Arrows)
	assert.Equal(t, KeyboardNone, skills.Controls.Keyboard)

	projects := ProjectsRotation()
	require.NoError(t, projects.Validate())
	assert.Equal(t, 3*time.Second, projects.Interval)
	assert.Equal(t, 800*time.Millisecond, projects.TransitionDuration)
	assert.True(t, projects.Controls.Arrows)
	assert.Equal(t, KeyboardGlobal, projects.Controls.Keyboard)

	certificates := CertificatesRotation()
	require.NoError(t, certificates.Validate())
	assert.Equal(t, KeyboardUnlessEditing, certificates.Controls.Keyboard)

	for _, config := range []RotationConfig{skills, projects, certificates} {
		assert.True(t, config.Controls.HoverPause, config.Name)
		assert.True(t, config.Controls.Indicators, config.Name)
	}
}

func TestValidateRejectsNonPositiveDurations(t *testing.T) {
	config := ProjectsRotation()
	config.TransitionDuration = 0
	assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)

	config = ProjectsRotation()
	config.Interval = -time.Second
	assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)

	config = ProjectsRotation()
	config.Name = ""
	assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	config := SkillsRotation()
	assert.Equal(t, SkillsInterval, config.WithInterval(0).Interval)
	assert.Equal(t, 7*time.Second, config.WithInterval(7*time.Second).Interval)
}

func TestWrap(t *testing.T) {
	cases := []struct {
		index, n, want int
	}{
		{3, 3, 0},
		{-1, 3, 2},
		{-4, 3, 2},
		{7, 5, 2},
		{2, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Wrap(tc.index, tc.n), "Wrap(%d, %d)", tc.index, tc.n)
	}
}
