package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/devbush/clipsave/internal/domain"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

// FormatListModel is the bubbletea model for quality selection
type FormatListModel struct {
	title   string
	options []domain.FormatOption
	cursor  int
	chosen  bool
}

// NewFormatListModel creates a new quality list
func NewFormatListModel(title string, options []domain.FormatOption) FormatListModel {
	return FormatListModel{
		title:   title,
		options: options,
	}
}

func (m FormatListModel) Init() tea.Cmd {
	return nil
}

func (m FormatListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FormatListModel) View() string {
	var sb strings.Builder

	title := m.title
	if len(title) > 50 {
		title = title[:47] + "..."
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}

		line := fmt.Sprintf("%s%s", cursor, FormatOptionLine(opt))
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString("\nenter=download, q=cancel\n")

	return sb.String()
}

// Choice returns the chosen option, or nil if the user cancelled
func (m FormatListModel) Choice() *domain.FormatOption {
	if !m.chosen || m.cursor >= len(m.options) {
		return nil
	}
	opt := m.options[m.cursor]
	return &opt
}

// RunFormatSelect displays the quality list and returns the chosen option.
// A nil option with nil error means the user cancelled.
func RunFormatSelect(title string, options []domain.FormatOption) (*domain.FormatOption, error) {
	if len(options) == 0 {
		return nil, domain.ErrNoFormats
	}

	model := NewFormatListModel(title, options)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(FormatListModel).Choice(), nil
}
