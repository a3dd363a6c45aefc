package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	pages := []string{"getting-started", "roles", "accidentals", "playback", "transposition"}

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"roles", "roles", true},
		{"ROLES", "roles", true},
		{"accdntls", "accidentals", true},
		{"trnsp", "transposition", true},
		{"zzz", "", false},
		{"  ", "", false},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.in, pages)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResolveUnique(t *testing.T) {
	names := []string{"showExtensions", "showNoteActions", "showTouchPlay", "tempo", "rootOnTop"}

	got, others, ok := ResolveUnique("TEMPO", names)
	require.True(t, ok)
	assert.Equal(t, "tempo", got)
	assert.Empty(t, others)

	got, _, ok = ResolveUnique("tmpo", names)
	require.True(t, ok)
	assert.Equal(t, "tempo", got)

	got, others, ok = ResolveUnique("show", names)
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.ElementsMatch(t, []string{"showExtensions", "showNoteActions", "showTouchPlay"}, others)

	_, others, ok = ResolveUnique("qqq", names)
	assert.False(t, ok)
	assert.Empty(t, others)
}

func TestScoreCompletionsLimit(t *testing.T) {
	names := []string{"showExtensions", "showNoteActions", "showTouchPlay", "tempo"}
	assert.Equal(t, names, ScoreCompletions("", names, 2))
	assert.Len(t, ScoreCompletions("show", names, 2), 2)
	assert.Nil(t, ScoreCompletions("qqq", names, 0))
}

func TestParseSince(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"2h", now.Add(-2 * time.Hour)},
		{"90m", now.Add(-90 * time.Minute)},
		{"3d", now.AddDate(0, 0, -3)},
		{"2w", now.AddDate(0, 0, -14)},
		{"1mo", now.AddDate(0, -1, 0)},
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)},
		{"2024-06-01T08:30", time.Date(2024, 6, 1, 8, 30, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := ParseSince(tt.in, now)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v want %v", tt.in, got, tt.want)
	}

	for _, bad := range []string{"xd", "yesterday", "-3w"} {
		_, err := ParseSince(bad, now)
		assert.Error(t, err, bad)
	}
}
