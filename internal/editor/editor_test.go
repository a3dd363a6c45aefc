package editor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fake-editor")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return p
}

func TestPreferredEditorHonorsEnv(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "micro -readonly")
	ed, err := PreferredEditor()
	require.NoError(t, err)
	assert.Equal(t, "micro -readonly", ed)

	t.Setenv("VISUAL", "code --wait")
	ed, err = PreferredEditor()
	require.NoError(t, err)
	assert.Equal(t, "code --wait", ed)
}

func TestEditDetectsChange(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(target, []byte("document = \"TestMarkdown\"\n"), 0o600))
	var out bytes.Buffer
	streams := Streams{In: bytes.NewReader(nil), Out: &out, Err: &out}

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", writeScript(t, `echo "[render]" >> "$1"`))
	changed, err := Edit(context.Background(), target, streams)
	require.NoError(t, err)
	assert.True(t, changed)

	t.Setenv("EDITOR", writeScript(t, `cat "$1" > /dev/null`))
	changed, err = Edit(context.Background(), target, streams)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestEditFailsOnEditorError(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(target, nil, 0o600))
	t.Setenv("VISUAL", writeScript(t, "exit 3"))
	_, err := Edit(context.Background(), target, Streams{})
	assert.Error(t, err)
}

func TestEditMissingFile(t *testing.T) {
	_, err := Edit(context.Background(), filepath.Join(t.TempDir(), "absent"), Streams{})
	assert.Error(t, err)
}
