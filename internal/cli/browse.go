package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/licaudit/licaudit/pkg/audit"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the interactive report viewer command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [report]",
		Short: "Explore a license report interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig("")
				if err != nil {
					return err
				}
				path = cfg.Output
			}
			report, err := audit.ReadReport(path)
			if err != nil {
				return err
			}
			model := NewReportModel(report)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// reportFilter selects which entries the viewer shows.
type reportFilter int

const (
	filterAll reportFilter = iota
	filterConflicts
	filterUnrecognized
)

func (f reportFilter) label() string {
	switch f {
	case filterConflicts:
		return "conflicts"
	case filterUnrecognized:
		return "unrecognized"
	default:
		return "all"
	}
}

// ReportModel is the bubbletea model for browsing a report.
type ReportModel struct {
	Report  *audit.Report
	Entries []audit.Entry // filtered view of Report.Dependencies
	Filter  reportFilter
	Cursor  int
	Height  int
	Offset  int
}

// NewReportModel creates a report viewer model.
func NewReportModel(report *audit.Report) ReportModel {
	m := ReportModel{
		Report: report,
		Height: 15,
	}
	m.applyFilter(filterAll)
	return m
}

func (m *ReportModel) applyFilter(f reportFilter) {
	m.Filter = f
	m.Entries = nil
	for _, e := range m.Report.Dependencies {
		switch f {
		case filterConflicts:
			if !e.HasConflict {
				continue
			}
		case filterUnrecognized:
			if !e.HasUnrecognized {
				continue
			}
		}
		m.Entries = append(m.Entries, e)
	}
	m.Cursor = 0
	m.Offset = 0
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "a":
			m.applyFilter(filterAll)
		case "c":
			m.applyFilter(filterConflicts)
		case "u":
			m.applyFilter(filterUnrecognized)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("License Report"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d dependencies · %d conflicts · %d unrecognized",
		m.Report.Summary.TotalDependencies,
		m.Report.Summary.WithConflicts,
		m.Report.Summary.WithUnrecognized)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  a all  c conflicts  u unrecognized  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  no entries (%s)", m.Filter.label())))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := ""
		switch {
		case e.HasConflict:
			status = "conflict"
		case e.HasUnrecognized:
			status = "unrecognized"
		}

		rows = append(rows, []string{
			cursor,
			e.Ecosystem,
			e.Name,
			strings.Join(e.Versions, ", "),
			strings.Join(e.Licenses, ", "),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Eco", "Package", "Versions", "Licenses", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				base = base.Bold(true)
			}
			switch {
			case e.HasConflict:
				return base.Foreground(colorRed)
			case e.HasUnrecognized:
				return base.Foreground(colorYellow)
			case isCurrent:
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %s", m.Cursor+1, len(m.Entries), m.Filter.label())))

	return b.String()
}

// detailView renders the selected entry's full license information.
func (m ReportModel) detailView() string {
	if m.Cursor >= len(m.Entries) {
		return ""
	}
	e := m.Entries[m.Cursor]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StyleValue.Render("  " + e.Name))
	b.WriteString(listDimStyle.Render(" (" + e.Ecosystem + ")"))
	b.WriteString("\n")
	if len(e.UnrecognizedTexts) > 0 {
		b.WriteString(StyleWarning.Render("  unrecognized: "))
		b.WriteString(listDimStyle.Render(strings.Join(e.UnrecognizedTexts, " | ")))
		b.WriteString("\n")
	}
	if len(e.Sources) > 0 {
		shown := e.Sources
		if len(shown) > 3 {
			shown = shown[:3]
		}
		b.WriteString(listDimStyle.Render("  sources: " + strings.Join(shown, ", ")))
		if len(e.Sources) > 3 {
			b.WriteString(listDimStyle.Render(fmt.Sprintf(" (+%d more)", len(e.Sources)-3)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
