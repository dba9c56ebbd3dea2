package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"astroinsight/internal/answer"
	"astroinsight/internal/domain"
	"astroinsight/internal/suggest"
)

const askTimeout = 60 * time.Second

// SearchPort is the TUI-facing subset of the search service.
type SearchPort interface {
	Ask(ctx context.Context, question string) (*domain.Answer, error)
	Analyze(text string) domain.Analysis
	Emphasize(text string, wrap func(string) string) string
}

type view int

const (
	viewAnswer view = iota
	viewSummary
	viewHighlights
)

func (v view) String() string {
	switch v {
	case viewSummary:
		return "Summary"
	case viewHighlights:
		return "Highlights"
	default:
		return "Answer"
	}
}

type answerMsg struct {
	question string
	answer   *domain.Answer
	err      error
}

// Model is the Bubble Tea model for the search screen.
type Model struct {
	service     SearchPort
	suggester   *suggest.Suggester
	recents     *suggest.Recents
	input       textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	suggestions []string
	selected    int
	answer      *domain.Answer
	analysis    domain.Analysis
	failed      bool
	view        view
	pending     string
	status      string
	ready       bool
}

// New creates a new TUI model instance. recents may be nil.
func New(service SearchPort, suggester *suggest.Suggester, recents *suggest.Recents) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about space biology and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		service:   service,
		suggester: suggester,
		recents:   recents,
		input:     ti,
		viewport:  vp,
		spinner:   sp,
		selected:  -1,
		status:    "Type to search. Tab switches views.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + qh + suggest.MaxSuggestions + 1 + 1 // header, input, suggestions, recents, status
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.refresh()
		return m, nil
	case answerMsg:
		if msg.question != m.pending {
			return m, nil
		}
		m.pending = ""
		if msg.err != nil {
			m.answer = nil
			m.failed = true
			m.status = "Error: " + msg.err.Error()
		} else {
			m.answer = msg.answer
			m.failed = false
			m.analysis = m.service.Analyze(msg.answer.Text)
			m.status = fmt.Sprintf("Answer for %q from %s", msg.question, msg.answer.Source)
		}
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		if m.pending == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.selected >= 0 && m.selected < len(m.suggestions) {
				m.input.SetValue(m.suggestions[m.selected])
				m.input.CursorEnd()
			}
			return m.submit()
		case "down":
			if len(m.suggestions) > 0 {
				m.selected = (m.selected + 1) % len(m.suggestions)
				return m, nil
			}
		case "up":
			if len(m.suggestions) > 0 {
				if m.selected <= 0 {
					m.selected = len(m.suggestions) - 1
				} else {
					m.selected--
				}
				return m, nil
			}
		case "esc":
			m.suggestions = nil
			m.selected = -1
			return m, nil
		case "tab":
			m.view = (m.view + 1) % 3
			m.refresh()
			return m, nil
		case "shift+tab":
			m.view = (m.view + 2) % 3
			m.refresh()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.updateSuggestions()
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	m.suggestions = nil
	m.selected = -1
	if q == "" {
		return m, nil
	}
	if m.recents != nil {
		if err := m.recents.Add(q); err != nil {
			m.status = "Could not save history: " + err.Error()
		}
	}
	m.pending = q
	m.status = fmt.Sprintf("Searching %q...", q)
	return m, tea.Batch(m.ask(q), m.spinner.Tick)
}

func (m Model) ask(q string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		ans, err := svc.Ask(ctx, q)
		return answerMsg{question: q, answer: ans, err: err}
	}
}

func (m *Model) updateSuggestions() {
	m.selected = -1
	if m.suggester == nil {
		m.suggestions = nil
		return
	}
	m.suggestions = m.suggester.Suggest(m.input.Value())
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderResult())
	m.viewport.GotoTop()
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("AstroInsight") + "  " + tabStyle.Render(m.view.String())
	input := queryBoxStyle.Render(m.input.View())
	status := m.status
	if m.pending != "" {
		status = m.spinner.View() + " " + status
	}
	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(resultBoxStyle.Render(m.viewport.View()) + "\n")
	b.WriteString(input + "\n")
	if len(m.suggestions) > 0 {
		b.WriteString(m.renderSuggestions() + "\n")
	} else if m.recents != nil && len(m.recents.List()) > 0 {
		b.WriteString(dimStyle.Render("Recent: "+strings.Join(m.recents.List(), " · ")) + "\n")
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

func (m Model) renderSuggestions() string {
	q := strings.TrimSpace(m.input.Value())
	lines := make([]string, len(m.suggestions))
	for i, s := range m.suggestions {
		line := s
		if start, end, ok := suggest.MatchSpan(s, q); ok {
			line = s[:start] + matchStyle.Render(s[start:end]) + s[end:]
		}
		if i == m.selected {
			lines[i] = selectedStyle.Render("› ") + line
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResult() string {
	if m.failed {
		return answer.Placeholder
	}
	if m.answer == nil {
		return "No results yet."
	}
	width := max(20, m.viewport.Width-2)
	wrap := lipgloss.NewStyle().Width(width)
	switch m.view {
	case viewSummary:
		return titleStyle.Render("Summary") + "\n\n" + wrap.Render(m.analysis.Summary)
	case viewHighlights:
		return m.renderHighlights(wrap)
	}
	body := m.service.Emphasize(m.answer.Text, func(s string) string { return markStyle.Render(s) })
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.answer.Title) + "\n\n")
	b.WriteString(wrap.Render(body) + "\n\n")
	c := m.analysis.Confidence
	b.WriteString(dimStyle.Render(fmt.Sprintf("Confidence: %s (%.0f%% letters)", c.Level, c.Ratio*100)))
	if len(m.answer.Citations) > 0 {
		b.WriteString("\n\n" + titleStyle.Render("Sources") + "\n")
		for _, cit := range m.answer.Citations {
			b.WriteString("• " + citationLabel(cit) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderHighlights(wrap lipgloss.Style) string {
	h := m.analysis.Highlights
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keywords") + "\n")
	if len(h.Keywords) == 0 {
		b.WriteString(dimStyle.Render("none"))
	} else {
		tags := make([]string, len(h.Keywords))
		for i, k := range h.Keywords {
			tags[i] = keywordStyle.Render(k)
		}
		b.WriteString(strings.Join(tags, " "))
	}
	b.WriteString("\n\n" + titleStyle.Render("Key sentences") + "\n")
	for i, s := range h.Sentences {
		b.WriteString(wrap.Render(fmt.Sprintf("%d. %s", i+1, s)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func citationLabel(c domain.Citation) string {
	label := c.Title
	if c.Year > 0 {
		label = fmt.Sprintf("%s (%d)", label, c.Year)
	}
	if c.URL != "" {
		label += " " + dimStyle.Render(c.URL)
	}
	return label
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	markStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)
