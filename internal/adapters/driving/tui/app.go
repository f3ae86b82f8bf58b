// Package tui provides a single-screen terminal UI: a query input, a
// result list and a rendered document view. Links wide enough for a
// full-screen UI get this; constrained links use the console.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driving"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

type mode int

const (
	modeQuery mode = iota
	modeResults
	modeDocument
)

type searchDoneMsg struct {
	hits []domain.SearchHit
	err  error
}

type renderDoneMsg struct {
	doc *domain.RenderedDocument
	err error
}

// App is the bubbletea model for the reader UI.
type App struct {
	reader driving.ReaderService

	input  textinput.Model
	mode   mode
	hits   []domain.SearchHit
	cursor int
	doc    *domain.RenderedDocument
	scroll int
	err    error

	width  int
	height int
}

// New creates the reader UI over the given reader service.
func New(reader driving.ReaderService) *App {
	input := textinput.New()
	input.Placeholder = "search the archive..."
	input.Focus()

	return &App{
		reader: reader,
		input:  input,
		width:  80,
		height: 24,
	}
}

// Run starts the UI and blocks until the user quits.
func Run(reader driving.ReaderService) error {
	_, err := tea.NewProgram(New(reader), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case searchDoneMsg:
		a.err = msg.err
		a.hits = msg.hits
		a.cursor = 0
		if msg.err == nil && len(msg.hits) > 0 {
			a.mode = modeResults
		}
		return a, nil

	case renderDoneMsg:
		a.err = msg.err
		if msg.err == nil {
			a.doc = msg.doc
			a.scroll = 0
			a.mode = modeDocument
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeQuery:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			query := strings.TrimSpace(a.input.Value())
			if query == "" {
				return a, nil
			}
			return a, a.searchCmd(query)
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case modeResults:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "esc":
			a.mode = modeQuery
			a.err = nil
			return a, nil
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.hits)-1 {
				a.cursor++
			}
		case "enter":
			if len(a.hits) > 0 {
				return a, a.renderCmd(a.hits[a.cursor].Path)
			}
		}
		return a, nil

	default: // modeDocument
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "esc":
			a.mode = modeResults
			return a, nil
		case "up", "k":
			if a.scroll > 0 {
				a.scroll--
			}
		case "down", "j":
			a.scroll++
		}
		return a, nil
	}
}

func (a *App) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		hits, err := a.reader.Search(context.Background(), query, domain.SearchOptions{Limit: 20})
		return searchDoneMsg{hits: hits, err: err}
	}
}

func (a *App) renderCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.reader.ResolveAndRender(context.Background(), path, 0)
		return renderDoneMsg{doc: doc, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	info := a.reader.Info()
	b.WriteString(titleStyle.Render(fmt.Sprintf("zimline - %s", info.Name)))
	b.WriteString("\n\n")

	switch a.mode {
	case modeQuery:
		b.WriteString(a.input.View())
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("enter: search · esc: quit"))
	case modeResults:
		for i, hit := range a.hits {
			line := fmt.Sprintf("  %s", hit.Title)
			if i == a.cursor {
				line = selectedStyle.Render(fmt.Sprintf("> %s", hit.Title))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("enter: read · esc: new search · q: quit"))
	default:
		b.WriteString(a.documentView())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("j/k: scroll · esc: results · q: quit"))
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(a.err.Error()))
	}
	return b.String()
}

// documentView renders the visible window of the current document.
func (a *App) documentView() string {
	if a.doc == nil {
		return ""
	}

	var lines []string
	lines = append(lines, headingStyle.Render(a.doc.Title), "")
	for _, block := range a.doc.Blocks {
		switch block.Kind {
		case domain.BlockHeading:
			lines = append(lines, headingStyle.Render(block.Text), "")
		case domain.BlockListItem:
			lines = append(lines, "* "+block.Text, "")
		default:
			lines = append(lines, block.Text, "")
		}
	}

	visible := a.height - 6
	if visible < 1 {
		visible = 1
	}
	if a.scroll > len(lines)-1 {
		a.scroll = len(lines) - 1
	}
	end := a.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[a.scroll:end], "\n")
}
