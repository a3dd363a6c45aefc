package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/scalemate/internal/settings"
)

func TestDefaultsOnFreshStore(t *testing.T) {
	u := newHarness(t).user
	assert.Equal(t, DefaultTempo, u.Tempo())
	assert.Equal(t, AnimationMedium, u.AnimationSpeed())
	assert.Equal(t, Auto, u.DiminishedColoringChoice())
	assert.Equal(t, TransposeNone, u.AudioTransposition())
	assert.Equal(t, RoleNumbers, u.RoleDisplayStyle())
	assert.Equal(t, PlayScales, u.WhatToPlay())
	assert.False(t, u.ShowExtensions())
	assert.Empty(t, u.Usage().ActsTaken)
	assert.Zero(t, u.Usage().NumSessions)
}

func TestPreferencesPersist(t *testing.T) {
	h := newHarness(t)
	u := h.user
	u.SetTempo(132)
	u.SetAudioTransposition(TransposeEb)
	u.SetRoleDisplayStyle(RoleSolfege)
	u.SetHideScaleName(true)
	u.SetDemoScales(false)

	r := h.reload(t)
	assert.Equal(t, 132, r.Tempo())
	assert.Equal(t, TransposeEb, r.AudioTransposition())
	assert.Equal(t, 3, r.AudioTransposition().Semitones())
	assert.Equal(t, RoleSolfege, r.RoleDisplayStyle())
	assert.True(t, r.HideScaleName())
	assert.False(t, r.DemoScales())
	assert.Equal(t, PlayMelodies, r.WhatToPlay())
}

func TestAccidentalCoupling(t *testing.T) {
	u := newHarness(t).user

	u.SetShowDoubleAccidentals(true)
	assert.True(t, u.ShowDoubleAccidentals())
	assert.True(t, u.ShowUncommonAccidentals())

	u.SetShowUncommonAccidentals(false)
	assert.False(t, u.ShowUncommonAccidentals())
	assert.False(t, u.ShowDoubleAccidentals())

	u.SetShowUncommonAccidentals(true)
	assert.False(t, u.ShowDoubleAccidentals())
}

func TestResetPreference(t *testing.T) {
	h := newHarness(t)
	u := h.user
	u.SetTempo(180)
	u.SetShowExtensions(true)

	require.NoError(t, u.ResetPreference(settings.Tempo))
	assert.Equal(t, DefaultTempo, u.Tempo())
	assert.True(t, u.ShowExtensions())
	assert.Equal(t, DefaultTempo, h.reload(t).Tempo())

	require.NoError(t, u.ResetPreference(settings.ShowExtensions))
	assert.False(t, u.ShowExtensions())

	assert.ErrorIs(t, u.ResetPreference(settings.NumSessions), ErrUnknownPreference)
}

func TestDisplayUpdates(t *testing.T) {
	updates := 0
	u := newHarness(t, WithDisplayUpdate(func() { updates++ })).user
	u.SetRepeatPlayback(true)
	u.SetAnimationSpeed(AnimationFast)
	assert.Zero(t, updates)
	u.SetShowExtensions(true)
	u.SetTempo(90)
	assert.Equal(t, 2, updates)
}

func TestComputedDurations(t *testing.T) {
	u := newHarness(t).user
	u.SetTempo(120)
	u.SetAnimationSpeed(AnimationSlow)
	assert.Equal(t, 500*time.Millisecond, u.QuarterNoteDuration())
	assert.Equal(t, 250*time.Millisecond, u.EighthNoteDuration())
	assert.Equal(t, 800*time.Millisecond, u.AnimationDuration())
	assert.Equal(t, 400*time.Millisecond, u.RespellingAnimationDuration())

	u.tempo = 0
	assert.Zero(t, u.QuarterNoteDuration())
}

func TestSetPreference(t *testing.T) {
	tests := []struct {
		name    settings.Name
		raw     string
		want    string
		wantErr error
	}{
		{settings.Tempo, "96", "96", nil},
		{settings.Tempo, "5", "", ErrInvalidValue},
		{settings.Tempo, "fast", "", ErrInvalidValue},
		{settings.AudioTransposition, "Bb", "B♭", nil},
		{settings.AudioTransposition, "e♭", "E♭", nil},
		{settings.AudioTransposition, "none", "none", nil},
		{settings.AudioTransposition, "F#", "", ErrInvalidValue},
		{settings.AnimationSpeed, "FAST", "fast", nil},
		{settings.DiminishedColoringChoice, "never", "never", nil},
		{settings.RoleDisplayStyle, "solfege", "solfege", nil},
		{settings.WhatToPlay, "melodies", "melodies", nil},
		{settings.ShowExtensions, "on", "true", nil},
		{settings.RootOnTop, "no", "false", nil},
		{settings.PresentationMode, "maybe", "", ErrInvalidValue},
		{settings.NumSessions, "3", "", ErrUnknownPreference},
	}
	for _, tc := range tests {
		t.Run(string(tc.name)+"="+tc.raw, func(t *testing.T) {
			h := newHarness(t)
			err := h.user.SetPreference(tc.name, tc.raw)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			p, ok := h.reload(t).Preference(tc.name)
			require.True(t, ok)
			assert.Equal(t, tc.want, p.Value)
		})
	}
}

func TestPreferencesListing(t *testing.T) {
	prefs := newHarness(t).user.Preferences()
	require.Len(t, prefs, len(settings.Preferences))
	assert.Equal(t, settings.DiminishedColoringChoice, prefs[0].Name)
	assert.Equal(t, []string{"always", "never", "auto"}, prefs[0].Choices)
	for _, p := range prefs {
		assert.NotEmpty(t, p.Value, string(p.Name))
	}
}

func TestParseVersion(t *testing.T) {
	v, ok := ParseVersion("2.1")
	require.True(t, ok)
	assert.Equal(t, Version("v2.1.0"), v)
	assert.Equal(t, "2.1.0", v.String())
	assert.True(t, v.Less("v2.10.0"))

	_, ok = ParseVersion("")
	assert.False(t, ok)
	_, ok = ParseVersion("banana")
	assert.False(t, ok)
}

func TestActSetCodec(t *testing.T) {
	s := ParseActSet("playScale, getHelp,unknownAct,,getHelp")
	assert.Equal(t, []Act{ActGetHelp, ActPlayScale}, s.Sorted())
	assert.Equal(t, "getHelp,playScale", s.String())
	assert.Empty(t, ParseActSet(""))

	p := ParsePageSet("roles,accidentals")
	assert.Equal(t, "accidentals,roles", p.String())
	assert.True(t, p.Contains("roles"))
}
