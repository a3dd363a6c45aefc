package user

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/scalemate/internal/review"
	"github.com/mithrel/scalemate/internal/settings"
)

// Policy holds the thresholds of the usage tracker.
type Policy struct {
	// SessionSpacing is the minimum gap after a decent session before acts
	// count toward the next one.
	SessionSpacing time.Duration
	// ActionsThreshold is the number of acts that makes a session decent.
	ActionsThreshold int
	// MinActsForReview is the number of distinct acts required before a
	// review may be requested.
	MinActsForReview int
	// ReviewSpacing is the minimum gap between two review prompts.
	ReviewSpacing time.Duration
	// ReviewDelay defers the platform prompt after the gate passes.
	ReviewDelay time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		SessionSpacing:   3 * time.Hour,
		ActionsThreshold: 4,
		MinActsForReview: 5,
		ReviewSpacing:    30 * 24 * time.Hour,
		ReviewDelay:      time.Second,
	}
}

// DefaultTempo is used until the user picks one.
const DefaultTempo = 100

// User holds the persisted preferences and usage milestones. Values are
// loaded once by New and saved by each setter. A User is meant to be driven
// from a single goroutine.
type User struct {
	s         *settings.Defaults
	log       *zap.Logger
	policy    Policy
	now       func() time.Time
	requester review.Requester
	scheduler review.Scheduler
	catalog   []string
	onDisplay func()
	version   Version

	actsTaken       ActSet
	helpPagesViewed PageSet
	prevSession     time.Time
	numSessions     int
	lastReview      time.Time
	askForReview    bool

	diminishedColoring      YesNoAuto
	roleDisplayStyle        RoleDisplayStyle
	showExtensions          bool
	showNoteActions         bool
	showTouchPlay           bool
	hideScaleName           bool
	animationSpeed          AnimationSpeed
	repeatPlayback          bool
	presentationMode        bool
	whatToPlay              WhatToPlay
	audioTransposition      AudioTransposition
	tempo                   int
	showDoubleAccidentals   bool
	rootOnTop               bool
	showUncommonAccidentals bool
	lastRunVersion          Version

	// transient
	actionsTakenThisSession int
}

type Option func(*User)

func WithPolicy(p Policy) Option { return func(u *User) { u.policy = p } }

func WithClock(now func() time.Time) Option { return func(u *User) { u.now = now } }

func WithRequester(r review.Requester) Option { return func(u *User) { u.requester = r } }

func WithScheduler(s review.Scheduler) Option { return func(u *User) { u.scheduler = s } }

func WithLogger(l *zap.Logger) Option { return func(u *User) { u.log = l } }

// WithHelpCatalog sets the names of every help page the app ships.
func WithHelpCatalog(names []string) Option {
	return func(u *User) { u.catalog = append([]string(nil), names...) }
}

// WithDisplayUpdate registers a callback for changes that affect what is on screen.
func WithDisplayUpdate(f func()) Option { return func(u *User) { u.onDisplay = f } }

// WithAppVersion sets the running version, used when no last-run version is stored.
func WithAppVersion(v Version) Option { return func(u *User) { u.version = v } }

// New loads every persisted value from s.
func New(s *settings.Defaults, opts ...Option) *User {
	u := &User{
		s:         s,
		log:       zap.NewNop(),
		policy:    DefaultPolicy(),
		now:       time.Now,
		scheduler: review.NewTimerScheduler(),
	}
	for _, o := range opts {
		o(u)
	}
	s.Register(map[settings.Name]string{
		settings.Tempo:                    strconv.Itoa(DefaultTempo),
		settings.AnimationSpeed:           string(AnimationMedium),
		settings.DiminishedColoringChoice: string(Auto),
		settings.AudioTransposition:       string(TransposeNone),
	})
	u.load()
	return u
}

// SetRequester replaces the review requester, for collaborators that only
// exist once the UI is running.
func (u *User) SetRequester(r review.Requester) { u.requester = r }

func (u *User) load() {
	s := u.s
	u.actsTaken = ParseActSet(s.ReadString(settings.ActsTaken))
	u.helpPagesViewed = ParsePageSet(s.ReadString(settings.HelpPagesViewed))
	u.prevSession = s.ReadDate(settings.PrevSession)
	u.numSessions = s.ReadInt(settings.NumSessions)
	u.lastReview = s.ReadDate(settings.LastReview)
	u.askForReview = s.ReadBool(settings.AskForReview)

	u.diminishedColoring = settings.ReadEnum(s, settings.DiminishedColoringChoice, YesNoAutoCases)
	u.roleDisplayStyle = settings.ReadEnum(s, settings.RoleDisplayStyle, RoleDisplayStyleCases)
	u.showExtensions = s.ReadBool(settings.ShowExtensions)
	u.showNoteActions = s.ReadBool(settings.ShowNoteActions)
	u.showTouchPlay = s.ReadBool(settings.ShowTouchPlay)
	u.hideScaleName = s.ReadBool(settings.HideScaleName)
	u.animationSpeed = settings.ReadEnum(s, settings.AnimationSpeed, AnimationSpeedCases)
	u.repeatPlayback = s.ReadBool(settings.RepeatPlayback)
	u.presentationMode = s.ReadBool(settings.PresentationMode)
	u.whatToPlay = settings.ReadEnum(s, settings.WhatToPlay, WhatToPlayCases)
	u.audioTransposition = settings.ReadEnum(s, settings.AudioTransposition, AudioTranspositionCases)
	u.tempo = s.ReadInt(settings.Tempo)
	u.showDoubleAccidentals = s.ReadBool(settings.ShowDoubleAccidentals)
	u.rootOnTop = s.ReadBool(settings.RootOnTop)
	u.showUncommonAccidentals = s.ReadBool(settings.ShowUncommonAccidentals)
}

func (u *User) updateDisplay() {
	if u.onDisplay != nil {
		u.onDisplay()
	}
}

func (u *User) Policy() Policy { return u.policy }

// Preferences

func (u *User) DiminishedColoringChoice() YesNoAuto { return u.diminishedColoring }

func (u *User) SetDiminishedColoringChoice(v YesNoAuto) {
	u.diminishedColoring = v
	u.s.SetString(settings.DiminishedColoringChoice, string(v))
}

func (u *User) RoleDisplayStyle() RoleDisplayStyle { return u.roleDisplayStyle }

func (u *User) SetRoleDisplayStyle(v RoleDisplayStyle) {
	u.roleDisplayStyle = v
	u.s.SetString(settings.RoleDisplayStyle, string(v))
	u.updateDisplay()
}

func (u *User) ShowExtensions() bool { return u.showExtensions }

func (u *User) SetShowExtensions(v bool) {
	u.showExtensions = v
	u.s.SetBool(settings.ShowExtensions, v)
	u.updateDisplay()
}

func (u *User) ShowNoteActions() bool { return u.showNoteActions }

func (u *User) SetShowNoteActions(v bool) {
	u.showNoteActions = v
	u.s.SetBool(settings.ShowNoteActions, v)
	u.updateDisplay()
}

func (u *User) ShowTouchPlay() bool { return u.showTouchPlay }

func (u *User) SetShowTouchPlay(v bool) {
	u.showTouchPlay = v
	u.s.SetBool(settings.ShowTouchPlay, v)
	u.updateDisplay()
}

func (u *User) HideScaleName() bool { return u.hideScaleName }

func (u *User) SetHideScaleName(v bool) {
	u.hideScaleName = v
	u.s.SetBool(settings.HideScaleName, v)
	u.updateDisplay()
}

func (u *User) AnimationSpeed() AnimationSpeed { return u.animationSpeed }

func (u *User) SetAnimationSpeed(v AnimationSpeed) {
	u.animationSpeed = v
	u.s.SetString(settings.AnimationSpeed, string(v))
}

func (u *User) RepeatPlayback() bool { return u.repeatPlayback }

func (u *User) SetRepeatPlayback(v bool) {
	u.repeatPlayback = v
	u.s.SetBool(settings.RepeatPlayback, v)
}

// PresentationMode shows touches on screen for demos and recordings.
func (u *User) PresentationMode() bool { return u.presentationMode }

func (u *User) SetPresentationMode(v bool) {
	u.presentationMode = v
	u.s.SetBool(settings.PresentationMode, v)
}

func (u *User) WhatToPlay() WhatToPlay { return u.whatToPlay }

func (u *User) SetWhatToPlay(v WhatToPlay) {
	u.whatToPlay = v
	u.s.SetString(settings.WhatToPlay, string(v))
}

func (u *User) DemoScales() bool { return u.whatToPlay == PlayScales }

func (u *User) SetDemoScales(v bool) {
	if v {
		u.SetWhatToPlay(PlayScales)
		return
	}
	u.SetWhatToPlay(PlayMelodies)
}

func (u *User) AudioTransposition() AudioTransposition { return u.audioTransposition }

func (u *User) SetAudioTransposition(v AudioTransposition) {
	u.audioTransposition = v
	u.s.SetString(settings.AudioTransposition, string(v))
}

// Tempo is in beats per minute.
func (u *User) Tempo() int { return u.tempo }

func (u *User) SetTempo(bpm int) {
	u.tempo = bpm
	u.s.SetInt(settings.Tempo, bpm)
	u.updateDisplay()
}

func (u *User) ShowDoubleAccidentals() bool { return u.showDoubleAccidentals }

// SetShowDoubleAccidentals turning on double accidentals also turns on
// uncommon accidentals.
func (u *User) SetShowDoubleAccidentals(v bool) {
	u.showDoubleAccidentals = v
	if v && !u.showUncommonAccidentals {
		u.SetShowUncommonAccidentals(true)
	}
	u.s.SetBool(settings.ShowDoubleAccidentals, v)
	u.updateDisplay()
}

func (u *User) RootOnTop() bool { return u.rootOnTop }

func (u *User) SetRootOnTop(v bool) {
	u.rootOnTop = v
	u.s.SetBool(settings.RootOnTop, v)
	u.updateDisplay()
}

// ShowUncommonAccidentals covers spellings like C♭ and E♯.
func (u *User) ShowUncommonAccidentals() bool { return u.showUncommonAccidentals }

// SetShowUncommonAccidentals turning off uncommon accidentals also turns off
// double accidentals.
func (u *User) SetShowUncommonAccidentals(v bool) {
	u.showUncommonAccidentals = v
	if !v && u.showDoubleAccidentals {
		u.SetShowDoubleAccidentals(false)
	}
	u.s.SetBool(settings.ShowUncommonAccidentals, v)
	u.updateDisplay()
}

// LastRunVersion is the version that last ran. It defaults to the running
// version so a fresh install is not treated as an upgrade.
func (u *User) LastRunVersion() Version {
	if u.lastRunVersion != "" {
		return u.lastRunVersion
	}
	v, ok := ParseVersion(u.s.ReadString(settings.LastRunVersion))
	if !ok {
		v = u.version
	}
	u.lastRunVersion = v
	return v
}

func (u *User) SetLastRunVersion(v Version) {
	u.lastRunVersion = v
	u.s.SetString(settings.LastRunVersion, v.String())
}

// Computed

func (u *User) AnimationDuration() time.Duration { return u.animationSpeed.Duration() }

func (u *User) RespellingAnimationDuration() time.Duration { return u.AnimationDuration() / 2 }

// QuarterNoteDuration is zero when no positive tempo is set.
func (u *User) QuarterNoteDuration() time.Duration {
	if u.tempo <= 0 {
		return 0
	}
	return time.Minute / time.Duration(u.tempo)
}

func (u *User) EighthNoteDuration() time.Duration { return u.QuarterNoteDuration() / 2 }
