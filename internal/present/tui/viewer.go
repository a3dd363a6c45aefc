package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mithrel/scalemate/internal/assets"
	"github.com/mithrel/scalemate/internal/present/format"
	"github.com/mithrel/scalemate/internal/user"
)

// ViewerOptions configures RunViewer.
type ViewerOptions struct {
	User      *user.User
	Title     string
	Document  []byte
	Markdown  format.MarkdownOptions
	ReviewURL string
	Status    string
	Log       *zap.Logger
}

// RunViewer shows the document in a full-screen pager with a help catalog
// and returns when the user quits.
func RunViewer(ctx context.Context, opts ViewerOptions) error {
	m := newModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	opts.User.SetRequester(ProgramRequester{Program: p})
	_, err := p.Run()
	return err
}

type screen int

const (
	screenDocument screen = iota
	screenHelpList
	screenHelpPage
)

type model struct {
	ctx    context.Context
	opts   ViewerOptions
	log    *zap.Logger
	screen screen

	vp      viewport.Model
	table   table.Model
	pages   []assets.HelpPage
	page    int
	content string

	review *reviewModal
	status string
	width  int
	height int
	ready  bool
}

func newModel(ctx context.Context, opts ViewerOptions) model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := model{
		ctx:    ctx,
		opts:   opts,
		log:    log,
		pages:  assets.HelpPages(),
		page:   -1,
		status: opts.Status,
		vp:     viewport.New(80, 20),
	}
	m.initTable()
	return m
}

func (m model) Init() tea.Cmd {
	m.opts.User.Performed(user.ActReadDocument)
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewMsg:
		m.review = newReviewModal(m.opts.ReviewURL)
		return m, nil
	case renderedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Render failed: %v", msg.err)
			m.log.Warn("render failed", zap.Error(msg.err))
			return m, nil
		}
		m.content = msg.out
		m.vp.SetContent(msg.out)
		m.vp.GotoTop()
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.applyLayout()
		if !m.ready {
			m.ready = true
		}
		return m, m.renderCurrent()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.review != nil {
			switch msg.String() {
			case "enter", "esc", "q", "y", "n":
				m.review = nil
			}
			return m, nil
		}
		switch m.screen {
		case screenDocument:
			return m.updateDocument(msg)
		case screenHelpList:
			return m.updateHelpList(msg)
		case screenHelpPage:
			return m.updateHelpPage(msg)
		}
	}
	return m.forward(msg)
}

func (m model) updateDocument(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "?", "h":
		m.screen = screenHelpList
		m.refreshRows()
		return m, nil
	}
	return m.forward(msg)
}

func (m model) updateHelpList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenDocument
		m.page = -1
		m.opts.User.PossiblyAskForReview(m.ctx)
		return m, m.renderCurrent()
	case "enter":
		idx := m.table.Cursor()
		if idx < 0 || idx >= len(m.pages) {
			return m, nil
		}
		m.page = idx
		m.screen = screenHelpPage
		m.opts.User.VisitedHelpPage(m.pages[idx].Name)
		m.refreshRows()
		return m, m.renderCurrent()
	}
	return m.forward(msg)
}

func (m model) updateHelpPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenHelpList
		m.page = -1
		return m, nil
	}
	return m.forward(msg)
}

// forward hands msg to the component of the current screen.
func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.screen == screenHelpList {
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

type renderedMsg struct {
	out string
	err error
}

// renderCurrent renders the document or the open help page at the current width.
func (m model) renderCurrent() tea.Cmd {
	src := m.opts.Document
	if m.screen == screenHelpPage && m.page >= 0 {
		data, err := assets.ReadHelpPage(m.pages[m.page].Name)
		if err != nil {
			return func() tea.Msg { return renderedMsg{err: err} }
		}
		src = data
	}
	opts := m.opts.Markdown
	opts.Width = wrapWidth(opts.Width, m.width)
	return func() tea.Msg {
		if opts.Plain {
			return renderedMsg{out: string(src)}
		}
		out, err := format.Markdown(src, opts)
		return renderedMsg{out: out, err: err}
	}
}

func wrapWidth(configured, term int) int {
	if term <= 0 {
		return configured
	}
	avail := max(20, term-2)
	if configured <= 0 || configured > avail {
		return avail
	}
	return configured
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	h := max(3, m.height-2)
	m.vp.Width = m.width
	m.vp.Height = h
	m.table.SetWidth(m.width)
	m.table.SetHeight(h)
	m.vp.SetContent(m.content)
}

func (m model) title() string {
	switch m.screen {
	case screenHelpList:
		return "Help"
	case screenHelpPage:
		if m.page >= 0 {
			return "Help: " + m.pages[m.page].Title
		}
	}
	if m.opts.Title != "" {
		return m.opts.Title
	}
	return "ScaleMate"
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) renderFooter() string {
	var left string
	switch m.screen {
	case screenDocument:
		left = "↑/↓ scroll • ?=help • q=exit"
	case screenHelpList:
		left = "↑/↓ navigate • enter=open • esc=back • q=exit"
	case screenHelpPage:
		left = "↑/↓ scroll • esc=back • q=exit"
	}
	right := m.status
	if m.screen != screenHelpList {
		right = strings.TrimSpace(fmt.Sprintf("%s %3.f%%", right, m.vp.ScrollPercent()*100))
	}
	width := max(m.width, lipgloss.Width(left)+lipgloss.Width(right)+1)
	space := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return footerStyle.Render(left + strings.Repeat(" ", space) + right)
}

func (m model) View() string {
	if !m.ready {
		return "Loading…\n"
	}
	var body string
	if m.screen == screenHelpList {
		body = m.table.View()
	} else {
		body = m.vp.View()
	}
	view := titleStyle.Render(m.title()) + "\n" + body + "\n" + m.renderFooter()
	if m.review != nil {
		return m.renderOverlay(view, m.review.View(), m.review.width, m.review.height)
	}
	return view
}
