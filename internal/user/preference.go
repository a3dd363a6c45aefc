package user

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mithrel/scalemate/internal/settings"
)

var (
	ErrUnknownPreference = errors.New("unknown preference")
	ErrInvalidValue      = errors.New("invalid value")
)

// Preference is a name-addressed view of one preference for listings.
type Preference struct {
	Name    settings.Name
	Value   string
	Choices []string
}

// Preferences returns every preference in display order.
func (u *User) Preferences() []Preference {
	out := make([]Preference, 0, len(settings.Preferences))
	for _, n := range settings.Preferences {
		p, _ := u.Preference(n)
		out = append(out, p)
	}
	return out
}

// Preference returns the current value of one preference.
func (u *User) Preference(n settings.Name) (Preference, bool) {
	p := Preference{Name: n}
	switch n {
	case settings.DiminishedColoringChoice:
		p.Value, p.Choices = string(u.diminishedColoring), enumChoices(YesNoAutoCases)
	case settings.RoleDisplayStyle:
		p.Value, p.Choices = string(u.roleDisplayStyle), enumChoices(RoleDisplayStyleCases)
	case settings.AnimationSpeed:
		p.Value, p.Choices = string(u.animationSpeed), enumChoices(AnimationSpeedCases)
	case settings.WhatToPlay:
		p.Value, p.Choices = string(u.whatToPlay), enumChoices(WhatToPlayCases)
	case settings.AudioTransposition:
		p.Value, p.Choices = string(u.audioTransposition), enumChoices(AudioTranspositionCases)
	case settings.Tempo:
		p.Value = strconv.Itoa(u.tempo)
	default:
		b, ok := u.boolPref(n)
		if !ok {
			return Preference{}, false
		}
		p.Value, p.Choices = strconv.FormatBool(b), []string{"true", "false"}
	}
	return p, true
}

// SetPreference parses raw for the named preference and applies it through
// the regular setter. Parse failures are returned; persistence is not.
func (u *User) SetPreference(n settings.Name, raw string) error {
	raw = strings.TrimSpace(raw)
	switch n {
	case settings.DiminishedColoringChoice:
		v, err := parseEnum(n, raw, YesNoAutoCases)
		if err != nil {
			return err
		}
		u.SetDiminishedColoringChoice(v)
	case settings.RoleDisplayStyle:
		v, err := parseEnum(n, raw, RoleDisplayStyleCases)
		if err != nil {
			return err
		}
		u.SetRoleDisplayStyle(v)
	case settings.AnimationSpeed:
		v, err := parseEnum(n, raw, AnimationSpeedCases)
		if err != nil {
			return err
		}
		u.SetAnimationSpeed(v)
	case settings.WhatToPlay:
		v, err := parseEnum(n, raw, WhatToPlayCases)
		if err != nil {
			return err
		}
		u.SetWhatToPlay(v)
	case settings.AudioTransposition:
		v, err := parseEnum(n, normalizeTransposition(raw), AudioTranspositionCases)
		if err != nil {
			return err
		}
		u.SetAudioTransposition(v)
	case settings.Tempo:
		bpm, err := strconv.Atoi(raw)
		if err != nil || bpm < 20 || bpm > 400 {
			return fmt.Errorf("%w for %s: %q (want 20-400)", ErrInvalidValue, n, raw)
		}
		u.SetTempo(bpm)
	default:
		if _, ok := u.boolPref(n); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPreference, n)
		}
		b, err := parseBool(raw)
		if err != nil {
			return fmt.Errorf("%w for %s: %q", ErrInvalidValue, n, raw)
		}
		u.setBoolPref(n, b)
	}
	return nil
}

// ResetPreference forgets the stored value of a preference, restoring its
// default.
func (u *User) ResetPreference(n settings.Name) error {
	if !settings.IsPreference(n) {
		return fmt.Errorf("%w: %s", ErrUnknownPreference, n)
	}
	u.s.Delete(n)
	u.load()
	u.updateDisplay()
	return nil
}

func (u *User) boolPref(n settings.Name) (bool, bool) {
	switch n {
	case settings.ShowExtensions:
		return u.showExtensions, true
	case settings.ShowNoteActions:
		return u.showNoteActions, true
	case settings.ShowTouchPlay:
		return u.showTouchPlay, true
	case settings.HideScaleName:
		return u.hideScaleName, true
	case settings.RepeatPlayback:
		return u.repeatPlayback, true
	case settings.PresentationMode:
		return u.presentationMode, true
	case settings.ShowDoubleAccidentals:
		return u.showDoubleAccidentals, true
	case settings.RootOnTop:
		return u.rootOnTop, true
	case settings.ShowUncommonAccidentals:
		return u.showUncommonAccidentals, true
	}
	return false, false
}

func (u *User) setBoolPref(n settings.Name, v bool) {
	switch n {
	case settings.ShowExtensions:
		u.SetShowExtensions(v)
	case settings.ShowNoteActions:
		u.SetShowNoteActions(v)
	case settings.ShowTouchPlay:
		u.SetShowTouchPlay(v)
	case settings.HideScaleName:
		u.SetHideScaleName(v)
	case settings.RepeatPlayback:
		u.SetRepeatPlayback(v)
	case settings.PresentationMode:
		u.SetPresentationMode(v)
	case settings.ShowDoubleAccidentals:
		u.SetShowDoubleAccidentals(v)
	case settings.RootOnTop:
		u.SetRootOnTop(v)
	case settings.ShowUncommonAccidentals:
		u.SetShowUncommonAccidentals(v)
	}
}

// normalizeTransposition accepts ASCII spellings of the flat sign.
func normalizeTransposition(raw string) string {
	switch strings.ToLower(raw) {
	case "bb", "b♭", "b-flat":
		return string(TransposeBb)
	case "eb", "e♭", "e-flat":
		return string(TransposeEb)
	}
	return raw
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseEnum[T ~string](n settings.Name, raw string, cases []T) (T, error) {
	for _, c := range cases {
		if strings.EqualFold(string(c), raw) {
			return c, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w for %s: %q (choices: %s)", ErrInvalidValue, n, raw, strings.Join(enumChoices(cases), ", "))
}

func enumChoices[T ~string](cases []T) []string {
	out := make([]string, 0, len(cases))
	for _, c := range cases {
		out = append(out, string(c))
	}
	return out
}
