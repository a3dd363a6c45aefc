package format

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/patrickmn/go-cache"

	"github.com/mithrel/scalemate/internal/assets"
)

// MarkdownOptions selects how Markdown reaches the terminal.
type MarkdownOptions struct {
	// Style is a glamour standard style name such as "dracula".
	Style string
	// Width wraps rendered text; 0 disables wrapping.
	Width int
	// Plain writes the source Markdown untouched.
	Plain bool
}

var rendered = cache.New(30*time.Minute, time.Hour)

// RenderMarkdown writes md to w according to opts.
func RenderMarkdown(w io.Writer, md []byte, opts MarkdownOptions) error {
	if opts.Plain {
		_, err := w.Write(md)
		return err
	}
	out, err := Markdown(md, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Markdown renders md with glamour. Results are cached by content digest,
// style and width.
func Markdown(md []byte, opts MarkdownOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = "dracula"
	}
	key := assets.Digest(md) + "|" + style + "|" + strconv.Itoa(opts.Width)
	if out, ok := rendered.Get(key); ok {
		return out.(string), nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(string(md))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	rendered.Set(key, out, cache.DefaultExpiration)
	return out, nil
}
