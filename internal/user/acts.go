package user

import (
	"sort"
	"strings"
)

// Act tags a user action. Once performed it is remembered so the app stops
// suggesting it.
type Act string

const (
	ActGetHelp            Act = "getHelp"
	ActAllHelpViewed      Act = "allHelpViewed"
	ActReadDocument       Act = "readDocument"
	ActPlayScale          Act = "playScale"
	ActPlayMelody         Act = "playMelody"
	ActChangeTempo        Act = "changeTempo"
	ActTranspose          Act = "transpose"
	ActChangeDisplayStyle Act = "changeDisplayStyle"
	ActRevealName         Act = "revealName"
	ActToggleAccidentals  Act = "toggleAccidentals"
	ActChangeSettings     Act = "changeSettings"
)

// AllActs lists every known act.
var AllActs = []Act{
	ActGetHelp,
	ActAllHelpViewed,
	ActReadDocument,
	ActPlayScale,
	ActPlayMelody,
	ActChangeTempo,
	ActTranspose,
	ActChangeDisplayStyle,
	ActRevealName,
	ActToggleAccidentals,
	ActChangeSettings,
}

// ParseAct resolves an act tag.
func ParseAct(s string) (Act, bool) {
	s = strings.TrimSpace(s)
	for _, a := range AllActs {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// ActSet is the set of acts performed to date.
type ActSet map[Act]struct{}

// ParseActSet decodes the persisted form. Unknown tags are dropped.
func ParseActSet(s string) ActSet {
	out := ActSet{}
	for _, p := range splitList(s) {
		if a, ok := ParseAct(p); ok {
			out[a] = struct{}{}
		}
	}
	return out
}

func (s ActSet) Contains(a Act) bool {
	_, ok := s[a]
	return ok
}

func (s ActSet) Sorted() []Act {
	out := make([]Act, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String is the persisted form: sorted, comma-joined tags.
func (s ActSet) String() string {
	parts := make([]string, 0, len(s))
	for _, a := range s.Sorted() {
		parts = append(parts, string(a))
	}
	return strings.Join(parts, ",")
}

// PageSet is the set of help page names viewed to date.
type PageSet map[string]struct{}

func ParsePageSet(s string) PageSet {
	out := PageSet{}
	for _, p := range splitList(s) {
		out[p] = struct{}{}
	}
	return out
}

func (s PageSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s PageSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s PageSet) String() string { return strings.Join(s.Sorted(), ",") }

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
