package cli

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/scalemate/internal/present/format"
	"github.com/mithrel/scalemate/internal/wire"
)

const defaultPager = "less -FRSX"

// markdownOptions resolves rendering from config and flags. Wrapping follows
// the terminal when render.word_wrap is 0.
func markdownOptions(cmd *cobra.Command, app *wire.App) format.MarkdownOptions {
	plain, _ := cmd.Flags().GetBool("plain")
	opts := format.MarkdownOptions{
		Style: app.Cfg.GetString("render.style"),
		Width: app.Cfg.GetInt("render.word_wrap"),
		Plain: plain,
	}
	if opts.Width == 0 {
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				opts.Width = w
			}
		}
	}
	return opts
}

// renderDocument writes rendered Markdown through the pager.
func renderDocument(cmd *cobra.Command, app *wire.App, md []byte) error {
	opts := markdownOptions(cmd, app)
	return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
		return format.RenderMarkdown(w, md, opts)
	})
}

func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
