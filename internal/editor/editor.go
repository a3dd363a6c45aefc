package editor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mithrel/scalemate/internal/assets"
)

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// Streams are the terminal the editor runs in.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Edit opens path in the preferred editor and reports whether its content
// changed. Editor commands may carry flags.
func Edit(ctx context.Context, path string, s Streams) (bool, error) {
	before, err := digestFile(path)
	if err != nil {
		return false, err
	}
	ed, err := PreferredEditor()
	if err != nil {
		return false, err
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", "$EDITORCMD \"$FILEPATH\"")
	cmd.Env = append(os.Environ(), "EDITORCMD="+strings.TrimSpace(ed), "FILEPATH="+path)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = s.In, s.Out, s.Err
	if err := cmd.Run(); err != nil {
		return false, err
	}
	after, err := digestFile(path)
	if err != nil {
		return false, err
	}
	return before != after, nil
}

func digestFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return assets.Digest(data), nil
}
