package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mithrel/scalemate/internal/db"
	"github.com/mithrel/scalemate/internal/user"
)

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// WritePlainEvents writes the usage log as aligned columns.
func WritePlainEvents(w io.Writer, events []db.Event, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, "time\ttype\tname\tdetail\n")
	}
	for _, e := range events {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
			e.Time.Local().Format(time.DateTime), e.Type, esc(e.Name), esc(e.Detail))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainPreferences writes one preference per line with its choices.
func WritePlainPreferences(w io.Writer, prefs []user.Preference, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, "name\tvalue\tchoices\n")
	}
	for _, p := range prefs {
		line := fmt.Sprintf("%s\t%s\t%s\n", p.Name, esc(p.Value), strings.Join(p.Choices, "|"))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainUsage writes the usage snapshot as key/value lines.
func WritePlainUsage(w io.Writer, u user.Usage) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	acts := make([]string, 0, len(u.ActsTaken))
	for _, a := range u.ActsTaken {
		acts = append(acts, string(a))
	}
	rows := [][2]string{
		{"acts", fmt.Sprintf("%d [%s]", len(acts), strings.Join(acts, ", "))},
		{"help pages", fmt.Sprintf("%d/%d [%s]", len(u.HelpPagesViewed), u.HelpCatalogSize, strings.Join(u.HelpPagesViewed, ", "))},
		{"sessions", fmt.Sprintf("%d", u.NumSessions)},
		{"previous session", formatTime(u.PrevSession)},
		{"actions this session", fmt.Sprintf("%d", u.ActionsThisSession)},
		{"last review", formatTime(u.LastReview)},
		{"review pending", fmt.Sprintf("%t", u.AskForReview)},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}
