package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/scalemate/internal/db"
	"github.com/mithrel/scalemate/internal/settings"
	"github.com/mithrel/scalemate/internal/user"
	"github.com/mithrel/scalemate/internal/wire"
)

type testEnv struct {
	cfgPath string
	dataDir string
}

func newTestEnv(t *testing.T, extra string) testEnv {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	dataDir := filepath.Join(tmp, "data")
	cfg := filepath.Join(tmp, "config.toml")
	content := `data_dir = "` + strings.ReplaceAll(dataDir, "\\", "\\\\") + `"
review.url = "https://example.com/scalemate"
[render]
style = "notty"
word_wrap = 60
` + extra
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return testEnv{cfgPath: cfg, dataDir: dataDir}
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.cfgPath}, args...))
	err := Execute(context.Background(), root)
	return out.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

type usageStatus struct {
	ActsTaken       []string `json:"acts_taken"`
	HelpPagesViewed []string `json:"help_pages_viewed"`
	HelpCatalogSize int      `json:"help_catalog_size"`
	AskForReview    bool     `json:"ask_for_review"`
	LastReview      *string  `json:"last_review"`
}

func (e testEnv) status(t *testing.T) usageStatus {
	t.Helper()
	var st usageStatus
	out := e.mustRun(t, "usage", "status", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &st), out)
	return st
}

func TestRootPrintsDocumentWithoutTerminal(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustRun(t)
	assert.Contains(t, out, "ScaleMate")
	assert.Contains(t, out, "Markdown")
	assert.Contains(t, env.status(t).ActsTaken, "readDocument")
}

func TestShowPlainAndUnknownDocument(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustRun(t, "show", "--plain")
	assert.True(t, strings.HasPrefix(out, "# ScaleMate"), out)
	assert.Contains(t, out, "**Markdown**")

	_, err := env.run(t, "show", "NoSuchDocument")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TestMarkdown")
}

func TestGuideShowAndList(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustRun(t, "guide", "show", "rols")
	assert.Contains(t, out, "Note Roles")

	list := env.mustRun(t, "guide", "list")
	var rolesLine string
	for _, line := range strings.Split(list, "\n") {
		if strings.Contains(line, "roles") {
			rolesLine = line
		}
	}
	assert.True(t, strings.HasPrefix(rolesLine, "✓"), list)

	st := env.status(t)
	assert.Equal(t, []string{"roles"}, st.HelpPagesViewed)
	assert.Equal(t, 5, st.HelpCatalogSize)
	assert.Contains(t, st.ActsTaken, "getHelp")

	_, err := env.run(t, "guide", "show", "qqqq")
	assert.Error(t, err)
}

func TestGuideAllPagesRecordsAllHelpViewed(t *testing.T) {
	env := newTestEnv(t, "")
	for _, page := range []string{"getting-started", "roles", "accidentals", "playback", "transposition"} {
		env.mustRun(t, "guide", "show", page)
	}
	env.mustRun(t, "guide", "show", "roles")
	assert.Contains(t, env.status(t).ActsTaken, "allHelpViewed")

	out := env.mustRun(t, "usage", "history", "-o", "ndjson", "-n", "0")
	assert.Equal(t, 1, strings.Count(out, `"name":"allHelpViewed"`))
}

func TestPrefsSetGetList(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Equal(t, "100\n", env.mustRun(t, "prefs", "get", "tempo"))

	assert.Equal(t, "tempo = 140\n", env.mustRun(t, "prefs", "set", "tempo", "140"))
	assert.Equal(t, "140\n", env.mustRun(t, "prefs", "get", "tempo"))

	env.mustRun(t, "prefs", "set", "showDoubleAccidentals", "on")
	assert.Equal(t, "true\n", env.mustRun(t, "prefs", "get", "showUncommonAccidentals"))

	env.mustRun(t, "prefs", "set", "audioTransposition", "bb")
	assert.Equal(t, "B♭\n", env.mustRun(t, "prefs", "get", "audioTransposition"))

	_, err := env.run(t, "prefs", "set", "tempo", "5")
	assert.Error(t, err)
	_, err = env.run(t, "prefs", "set", "animationSpeed", "warp")
	assert.Error(t, err)

	var prefs []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	out := env.mustRun(t, "prefs", "list", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &prefs), out)
	assert.Len(t, prefs, len(settings.Preferences))

	acts := env.status(t).ActsTaken
	for _, want := range []string{"changeSettings", "changeTempo", "toggleAccidentals", "transpose"} {
		assert.Contains(t, acts, want)
	}
}

func TestUsageActResetHistory(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustRun(t, "usage", "act", "playScale,playMelody", "revealName")
	assert.Contains(t, out, "recorded 3 act(s); 3 distinct")

	_, err := env.run(t, "usage", "act", "juggle")
	assert.Error(t, err)

	hist := env.mustRun(t, "usage", "history", "--no-headers")
	assert.Contains(t, hist, "playMelody")

	env.mustRun(t, "usage", "reset")
	assert.Empty(t, env.status(t).ActsTaken)

	_, err = env.run(t, "usage", "history", "--since", "someday")
	assert.Error(t, err)
}

func seedEligible(t *testing.T, env testEnv) {
	t.Helper()
	ctx := context.Background()
	store, err := db.Open(ctx, "sqlite://"+filepath.Join(env.dataDir, "scalemate.db"))
	require.NoError(t, err)
	s := settings.New(ctx, store, nil)
	s.SetBool(settings.AskForReview, true)
	s.SetString(settings.ActsTaken, "getHelp,playScale,playMelody,transpose,changeTempo")
	require.NoError(t, store.Close())
}

func TestUsageReview(t *testing.T) {
	env := newTestEnv(t, "[usage]\nreview_delay = \"0s\"\n")
	assert.Contains(t, env.mustRun(t, "usage", "review"), "not eligible")

	require.NoError(t, os.MkdirAll(env.dataDir, 0o700))
	seedEligible(t, env)

	out := env.mustRun(t, "usage", "review")
	assert.Contains(t, out, "Enjoying ScaleMate?")
	assert.Contains(t, out, "https://example.com/scalemate")

	st := env.status(t)
	assert.False(t, st.AskForReview)
	assert.NotNil(t, st.LastReview)
	assert.Contains(t, env.mustRun(t, "usage", "review"), "not eligible")
}

func TestInvalidConfigRejected(t *testing.T) {
	env := newTestEnv(t, "[usage]\nactions_threshold = 0\n")
	_, err := env.run(t, "usage", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage.actions_threshold")

	_, err = env.run(t, "config", "check")
	assert.Error(t, err)
}

func TestConfigGenerate(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(t.TempDir(), "gen", "config.toml")

	out := env.mustRun(t, "config", "generate", "-o", path)
	assert.Contains(t, out, "Wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ScaleMate configuration")

	_, err = env.run(t, "config", "generate", "-o", path)
	assert.Error(t, err)

	out = env.mustRun(t, "config", "generate", "-o", path, "--update")
	assert.Contains(t, out, "Config already up to date")

	out = env.mustRun(t, "config", "check")
	assert.Contains(t, out, "config ok: "+env.cfgPath)
}

func TestVersionAndCompletion(t *testing.T) {
	env := newTestEnv(t, "")
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "version", "--json")), &info))
	assert.NotEmpty(t, info["version"])

	out := env.mustRun(t, "completion", "generate", "bash")
	assert.Contains(t, out, "scalemate")
	_, err := env.run(t, "completion", "generate", "tcsh")
	assert.Error(t, err)

	_, err = os.Stat(env.dataDir)
	assert.True(t, os.IsNotExist(err), "version and completion do not open the store")
}

func TestConfigEditValidates(t *testing.T) {
	env := newTestEnv(t, "")
	script := filepath.Join(t.TempDir(), "fake-editor")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf '[usage]\\nactions_threshold = -1\\n' >> \"$1\"\n"), 0o755))
	t.Setenv("VISUAL", script)

	_, err := env.run(t, "config", "edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was saved but invalid config")

	t.Setenv("VISUAL", "true")
	out := env.mustRun(t, "config", "edit")
	assert.Contains(t, out, "No changes")
}

func TestPrefsSetRejectsAmbiguousName(t *testing.T) {
	env := newTestEnv(t, "")
	for _, name := range []string{"show", "st", "e"} {
		_, err := env.run(t, "prefs", "set", name, "true")
		require.Error(t, err, name)
		assert.ErrorIs(t, err, user.ErrUnknownPreference, name)
		assert.Contains(t, err.Error(), "candidates", name)
	}

	var prefs []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	out := env.mustRun(t, "prefs", "list", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &prefs), out)
	for _, p := range prefs {
		if p.Value == "true" {
			t.Errorf("%s changed to true", p.Name)
		}
	}
	assert.Empty(t, env.status(t).ActsTaken)

	assert.Equal(t, "tempo = 150\n", env.mustRun(t, "prefs", "set", "tmpo", "150"))
	assert.Equal(t, "150\n", env.mustRun(t, "prefs", "get", "tmpo"))
}

func TestPrefsReset(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "prefs", "set", "tempo", "150")
	env.mustRun(t, "prefs", "set", "rootOnTop", "true")

	assert.Equal(t, "tempo = 100\n", env.mustRun(t, "prefs", "reset", "tempo"))
	assert.Equal(t, "true\n", env.mustRun(t, "prefs", "get", "rootOnTop"))

	env.mustRun(t, "prefs", "reset", "--all")
	assert.Equal(t, "false\n", env.mustRun(t, "prefs", "get", "rootOnTop"))

	_, err := env.run(t, "prefs", "reset")
	assert.Error(t, err)
	_, err = env.run(t, "prefs", "reset", "show")
	assert.ErrorIs(t, err, user.ErrUnknownPreference)
}

func TestExecuteClosesAppWhenCommandFails(t *testing.T) {
	env := newTestEnv(t, "")
	root := NewRootCmd()
	var app *wire.App
	flushed := false
	root.AddCommand(&cobra.Command{
		Use: "fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			app = getApp(cmd)
			app.Scheduler.After(10*time.Millisecond, func() { flushed = true })
			return errors.New("failed after opening the store")
		},
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", env.cfgPath, "fail"})

	err := Execute(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after opening the store")
	require.NotNil(t, app)
	assert.True(t, flushed, "pending work is waited for")
	_, err = app.Store.Get(context.Background(), string(settings.Tempo))
	assert.Error(t, err, "store is closed")
}
