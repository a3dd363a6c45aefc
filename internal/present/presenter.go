package present

import (
	"io"

	"github.com/mithrel/scalemate/internal/db"
	"github.com/mithrel/scalemate/internal/present/format"
	"github.com/mithrel/scalemate/internal/user"
)

type Mode int

const (
	ModePlain Mode = iota
	ModeJSON
	ModeNDJSON
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
}

// ParseMode parses "plain", "json" or "ndjson".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain", "":
		return ModePlain, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	default:
		return ModePlain, false
	}
}

// RenderEvents renders the usage log according to options.
func RenderEvents(w io.Writer, events []db.Event, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		if events == nil {
			events = []db.Event{}
		}
		return format.WriteJSON(w, events, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONEvents(w, events)
	default:
		return format.WritePlainEvents(w, events, opts.Headers)
	}
}

type preferenceJSON struct {
	Name    string   `json:"name"`
	Value   string   `json:"value"`
	Choices []string `json:"choices,omitempty"`
}

// RenderPreferences renders preferences according to options.
func RenderPreferences(w io.Writer, prefs []user.Preference, opts Options) error {
	if opts.Mode == ModePlain {
		return format.WritePlainPreferences(w, prefs, opts.Headers)
	}
	out := make([]preferenceJSON, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, preferenceJSON{Name: string(p.Name), Value: p.Value, Choices: p.Choices})
	}
	if opts.Mode == ModeNDJSON {
		for _, p := range out {
			if err := format.WriteJSON(w, p, false); err != nil {
				return err
			}
		}
		return nil
	}
	return format.WriteJSON(w, out, opts.JSONIndent)
}

type usageJSON struct {
	ActsTaken          []user.Act `json:"acts_taken"`
	HelpPagesViewed    []string   `json:"help_pages_viewed"`
	HelpCatalogSize    int        `json:"help_catalog_size"`
	PrevSession        *string    `json:"prev_session"`
	NumSessions        int        `json:"num_sessions"`
	LastReview         *string    `json:"last_review"`
	AskForReview       bool       `json:"ask_for_review"`
	ActionsThisSession int        `json:"actions_this_session"`
}

// RenderUsage renders the usage snapshot according to options.
func RenderUsage(w io.Writer, u user.Usage, opts Options) error {
	if opts.Mode == ModePlain {
		return format.WritePlainUsage(w, u)
	}
	out := usageJSON{
		ActsTaken:          nonNil(u.ActsTaken),
		HelpPagesViewed:    nonNil(u.HelpPagesViewed),
		HelpCatalogSize:    u.HelpCatalogSize,
		NumSessions:        u.NumSessions,
		AskForReview:       u.AskForReview,
		ActionsThisSession: u.ActionsThisSession,
	}
	if !u.PrevSession.IsZero() {
		s := u.PrevSession.UTC().Format("2006-01-02T15:04:05Z07:00")
		out.PrevSession = &s
	}
	if !u.LastReview.IsZero() {
		s := u.LastReview.UTC().Format("2006-01-02T15:04:05Z07:00")
		out.LastReview = &s
	}
	return format.WriteJSON(w, out, opts.JSONIndent && opts.Mode == ModeJSON)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
