package present

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/scalemate/internal/db"
	"github.com/mithrel/scalemate/internal/settings"
	"github.com/mithrel/scalemate/internal/user"
)

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"plain": ModePlain, "": ModePlain, "json": ModeJSON, "ndjson": ModeNDJSON} {
		got, ok := ParseMode(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseMode("yaml")
	assert.False(t, ok)
}

func TestRenderEventsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderEvents(&buf, nil, Options{Mode: ModeJSON}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRenderEventsModes(t *testing.T) {
	events := []db.Event{{Time: time.Unix(0, 0).UTC(), Type: db.EventAct, Name: "transpose"}}

	var nd bytes.Buffer
	require.NoError(t, RenderEvents(&nd, events, Options{Mode: ModeNDJSON}))
	assert.Equal(t, 1, strings.Count(nd.String(), "\n"))
	assert.Contains(t, nd.String(), `"name":"transpose"`)

	var plain bytes.Buffer
	require.NoError(t, RenderEvents(&plain, events, Options{Mode: ModePlain}))
	assert.Contains(t, plain.String(), "transpose")
}

func TestRenderPreferencesJSON(t *testing.T) {
	prefs := []user.Preference{{Name: settings.RootOnTop, Value: "false", Choices: []string{"true", "false"}}}
	var buf bytes.Buffer
	require.NoError(t, RenderPreferences(&buf, prefs, Options{Mode: ModeJSON}))
	assert.JSONEq(t, `[{"name":"rootOnTop","value":"false","choices":["true","false"]}]`, buf.String())
}

func TestRenderUsageJSON(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, RenderUsage(&buf, user.Usage{
		ActsTaken:   []user.Act{user.ActTranspose},
		NumSessions: 6,
		PrevSession: at,
	}, Options{Mode: ModeJSON}))
	assert.JSONEq(t, `{
		"acts_taken": ["transpose"],
		"help_pages_viewed": [],
		"help_catalog_size": 0,
		"prev_session": "2024-03-01T08:00:00Z",
		"num_sessions": 6,
		"last_review": null,
		"ask_for_review": false,
		"actions_this_session": 0
	}`, buf.String())
}
