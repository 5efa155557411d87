package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"biaslens/internal/domain"
)

// AnalyzePort is the TUI-facing subset of the analysis service.
type AnalyzePort interface {
	Analyze(ctx context.Context, text string) (domain.Analysis, error)
}

type analysisMsg struct {
	result domain.Analysis
	err    error
}

const (
	inputHeight = 8
	barWidth    = 30
)

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service  AnalyzePort
	timeout  time.Duration
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	result   *domain.Analysis
	status   string
	busy     bool
	ready    bool
}

// New creates a new TUI model instance. timeout bounds each analysis.
func New(service AnalyzePort, timeout time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste article text, then press ctrl+s"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		service:  service,
		timeout:  timeout,
		input:    ta,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		status:   "ctrl+s analyse · ctrl+l clear · pgup/pgdn scroll · ctrl+c quit",
	}
}

// Init initializes the model (textarea cursor blink).
func (m Model) Init() tea.Cmd { return textarea.Blink }

// Update handles key, window and analysis events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		iw, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + inputHeight + ih // header + status + input box
		m.input.SetWidth(max(20, msg.Width-iw))
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.renderResult())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyCtrlS:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.status = "Nothing to analyse."
				return m, nil
			}
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Analysing..."
			return m, tea.Batch(m.spinner.Tick, m.analyze(text))
		case tea.KeyCtrlL:
			m.input.Reset()
			m.result = nil
			m.viewport.SetContent(m.renderResult())
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case analysisMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.result = &msg.result
			m.status = "Done."
		}
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) analyze(text string) tea.Cmd {
	svc, timeout := m.service, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res, err := svc.Analyze(ctx, text)
		return analysisMsg{result: res, err: err}
	}
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Bias Lens")
	results := resultBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No analysis yet."
	}
	var b strings.Builder
	if bias := m.result.Bias; bias != nil {
		b.WriteString(labelStyle(bias.Label).Render(strings.ToUpper(string(bias.Label))))
		fmt.Fprintf(&b, "  (trained on %d %s rows)\n\n", bias.ModelInfo.TrainedOn, bias.ModelInfo.Source)
		for _, p := range bias.Probabilities {
			fmt.Fprintf(&b, "%-16s %s %5.1f%%\n", p.Label, bar(p.Score, barWidth), p.Score*100)
		}
	} else {
		b.WriteString(errorStyle.Render("Classification unavailable: " + m.result.BiasError))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	title := "Summary"
	if m.result.UsedFallback {
		title += " (extractive)"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(m.result.Summary)
	if m.result.ProviderError != "" {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("provider error: " + m.result.ProviderError))
	}
	return b.String()
}

// bar renders score in [0,1] as a fixed-width block bar.
func bar(score float64, width int) string {
	filled := int(score*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func labelStyle(l domain.Label) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch l {
	case domain.Neutral:
		return s.Foreground(lipgloss.Color("10"))
	case domain.SlightlyBiased:
		return s.Foreground(lipgloss.Color("11"))
	default:
		return s.Foreground(lipgloss.Color("9"))
	}
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
