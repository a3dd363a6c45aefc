package settings

// Name is the fixed key a value is persisted under.
type Name string

const (
	ActsTaken       Name = "actsTaken"
	HelpPagesViewed Name = "helpPagesViewed"
	PrevSession     Name = "prevSession"
	NumSessions     Name = "numSessions"
	LastReview      Name = "lastReview"
	AskForReview    Name = "askForReview"

	DiminishedColoringChoice Name = "diminishedColoringChoice"
	RoleDisplayStyle         Name = "roleDisplayStyle"
	ShowExtensions           Name = "showExtensions"
	ShowNoteActions          Name = "showNoteActions"
	ShowTouchPlay            Name = "showTouchPlay"
	HideScaleName            Name = "hideScaleName"
	AnimationSpeed           Name = "animationSpeed"
	RepeatPlayback           Name = "repeatPlayback"
	PresentationMode         Name = "presentationMode"
	WhatToPlay               Name = "whatToPlay"
	AudioTransposition       Name = "audioTransposition"
	Tempo                    Name = "tempo"
	ShowDoubleAccidentals    Name = "showDoubleAccidentals"
	RootOnTop                Name = "rootOnTop"
	ShowUncommonAccidentals  Name = "showUncommonAccidentals"

	LastRunVersion Name = "lastRunVersion"
	DocumentDigest Name = "documentDigest"
)

// Usage lists the bookkeeping keys maintained by the usage tracker.
var Usage = []Name{ActsTaken, HelpPagesViewed, PrevSession, NumSessions, LastReview, AskForReview}

// Preferences lists the user-editable keys in display order.
var Preferences = []Name{
	DiminishedColoringChoice,
	RoleDisplayStyle,
	ShowExtensions,
	ShowNoteActions,
	ShowTouchPlay,
	HideScaleName,
	AnimationSpeed,
	RepeatPlayback,
	PresentationMode,
	WhatToPlay,
	AudioTransposition,
	Tempo,
	ShowDoubleAccidentals,
	RootOnTop,
	ShowUncommonAccidentals,
}

// All returns every known key.
func All() []Name {
	out := make([]Name, 0, len(Usage)+len(Preferences)+2)
	out = append(out, Usage...)
	out = append(out, Preferences...)
	return append(out, LastRunVersion, DocumentDigest)
}

// ParseName resolves a key by its persisted spelling.
func ParseName(s string) (Name, bool) {
	for _, n := range All() {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// IsPreference reports whether n is a user-editable preference.
func IsPreference(n Name) bool {
	for _, p := range Preferences {
		if p == n {
			return true
		}
	}
	return false
}
