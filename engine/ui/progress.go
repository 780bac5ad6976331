package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spaghettifunk/sketchbook/engine/assets"
)

const (
	padding  = 2
	maxWidth = 80
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// ProgressMsg and CompleteMsg carry coordinator events into the program.
type ProgressMsg assets.Progress

type CompleteMsg assets.Completion

// Model renders the progress of the most recent batch and a summary of every
// completed one.
type Model struct {
	title      string
	bar        progress.Model
	quitOnDone bool

	batchID   string
	loaded    int
	total     int
	fraction  float64
	completed []assets.Completion
	waiting   bool
}

// NewModel builds the view. With quitOnDone the program exits after the
// first completion; otherwise it keeps following reloads until q is pressed.
func NewModel(title string, quitOnDone bool) Model {
	return Model{
		title:      title,
		bar:        progress.New(progress.WithDefaultGradient()),
		quitOnDone: quitOnDone,
		waiting:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - padding*2 - 4
		if m.bar.Width > maxWidth {
			m.bar.Width = maxWidth
		}

	case ProgressMsg:
		m.batchID = msg.BatchID
		m.waiting = false
		m.loaded, m.total, m.fraction = msg.Loaded, msg.Total, msg.Fraction

	case CompleteMsg:
		m.waiting = false
		m.batchID = msg.BatchID
		m.total = msg.Total
		m.loaded = msg.Total
		if msg.Total > 0 {
			m.fraction = 1
		}
		m.completed = append(m.completed, assets.Completion(msg))
		if m.quitOnDone {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	pad := strings.Repeat(" ", padding)
	var b strings.Builder

	b.WriteString("\n" + pad + titleStyle.Render(m.title) + "\n\n")
	if m.waiting {
		b.WriteString(pad + helpStyle.Render("waiting for assets...") + "\n")
	} else {
		b.WriteString(pad + m.bar.ViewAs(m.fraction) + "\n")
		b.WriteString(pad + countStyle.Render(fmt.Sprintf("%d/%d assets", m.loaded, m.total)) + "\n")
	}

	for _, c := range m.completed {
		b.WriteString("\n")
		summary := fmt.Sprintf("batch %s: %d assets in %s", shortID(c.BatchID), c.Total, c.Elapsed.Round(time.Millisecond))
		if c.Failed == 0 {
			b.WriteString(pad + doneStyle.Render(summary) + "\n")
			continue
		}
		b.WriteString(pad + errorStyle.Render(fmt.Sprintf("%s, %d failed", summary, c.Failed)) + "\n")
		if c.Err != nil {
			for _, line := range strings.Split(c.Err.Error(), "\n") {
				b.WriteString(pad + "  " + errorStyle.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n" + pad + helpStyle.Render("q quit") + "\n")
	return b.String()
}

// Completed returns the completions seen so far.
func (m Model) Completed() []assets.Completion {
	return m.completed
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Sender is the part of *tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Attach forwards coordinator events to the program. The returned function
// removes the listeners.
func Attach(p Sender, c *assets.Coordinator) func() {
	progressID := c.OnProgress(func(pr assets.Progress) {
		p.Send(ProgressMsg(pr))
	})
	completeID := c.OnComplete(func(done assets.Completion) {
		p.Send(CompleteMsg(done))
	})
	return func() {
		c.RemoveListener(progressID)
		c.RemoveListener(completeID)
	}
}
