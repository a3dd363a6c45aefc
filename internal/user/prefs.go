package user

import "time"

type YesNoAuto string

const (
	Always YesNoAuto = "always"
	Never  YesNoAuto = "never"
	Auto   YesNoAuto = "auto"
)

var YesNoAutoCases = []YesNoAuto{Always, Never, Auto}

// RoleDisplayStyle selects how each note's role in the scale is labeled.
type RoleDisplayStyle string

const (
	RoleNumbers RoleDisplayStyle = "numbers"
	RoleSolfege RoleDisplayStyle = "solfege"
	RoleHidden  RoleDisplayStyle = "hidden"
)

var RoleDisplayStyleCases = []RoleDisplayStyle{RoleNumbers, RoleSolfege, RoleHidden}

type AnimationSpeed string

const (
	AnimationSlow   AnimationSpeed = "slow"
	AnimationMedium AnimationSpeed = "medium"
	AnimationFast   AnimationSpeed = "fast"
)

var AnimationSpeedCases = []AnimationSpeed{AnimationSlow, AnimationMedium, AnimationFast}

func (a AnimationSpeed) Duration() time.Duration {
	switch a {
	case AnimationSlow:
		return 800 * time.Millisecond
	case AnimationFast:
		return 250 * time.Millisecond
	default:
		return 500 * time.Millisecond
	}
}

type WhatToPlay string

const (
	PlayScales   WhatToPlay = "scales"
	PlayMelodies WhatToPlay = "melodies"
)

var WhatToPlayCases = []WhatToPlay{PlayScales, PlayMelodies}

// AudioTransposition shifts playback for transposing instruments.
type AudioTransposition string

const (
	TransposeNone AudioTransposition = "none"
	TransposeBb   AudioTransposition = "B♭"
	TransposeEb   AudioTransposition = "E♭"
)

var AudioTranspositionCases = []AudioTransposition{TransposeNone, TransposeBb, TransposeEb}

func (t AudioTransposition) Semitones() int {
	switch t {
	case TransposeBb:
		return -2
	case TransposeEb:
		return 3
	default:
		return 0
	}
}
