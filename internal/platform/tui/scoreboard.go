package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var scoreColumns = []string{"Rank", "Player", "Score", "Level", "Result", "Difficulty", "Date"}

// scoreRows formats records for both table renderers.
func scoreRows(records []storage.GameRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			r.Outcome.String(),
			r.Difficulty,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// ScoreboardModel is the Bubble Tea model for the high score screen.
type ScoreboardModel struct {
	records  []storage.GameRecord
	stats    *storage.Stats
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard over already loaded records.
func NewScoreboardModel(records []storage.GameRecord, stats *storage.Stats, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		records: records,
		stats:   stats,
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// tableHeight fits the table to the window without growing past its rows.
func tableHeight(screenHeight, rows int) int {
	return core.Clamp(screenHeight-8, 3, max(3, rows+1))
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	widths := []int{6, 12, 7, 7, 7, 10, 14}
	columns := make([]table.Column, len(scoreColumns))
	for i, title := range scoreColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	rows := make([]table.Row, 0, len(m.records))
	for _, r := range scoreRows(m.records) {
		rows = append(rows, table.Row(r))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height, len(rows))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("#706200")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	scoreMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(scoreTitleStyle.Render(centerText("SNAKE HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		empty := scoreMutedStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
		b.WriteString(scoreBoxStyle.Render(empty))
	} else {
		b.WriteString(scoreBoxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.stats != nil && m.stats.GamesCount > 0 {
		b.WriteString(scoreMutedStyle.Render(formatStats(m.stats)))
		b.WriteString("\n")
	}
	b.WriteString(scoreMutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func formatStats(s *storage.Stats) string {
	return fmt.Sprintf("%d games · %d won · best level %d · average score %.1f",
		s.GamesCount, s.Wins, s.BestLevel, s.AvgScore)
}

// FormatScores renders records as a static table for non-interactive output.
func FormatScores(records []storage.GameRecord, stats *storage.Stats) string {
	if len(records) == 0 {
		return "No scores recorded yet."
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(scoreColumns...).
		Rows(scoreRows(records)...)

	out := t.Render()
	if stats != nil && stats.GamesCount > 0 {
		out += "\n" + formatStats(stats)
	}
	return out
}

// RunScoreboard runs the interactive scoreboard screen.
func RunScoreboard(records []storage.GameRecord, stats *storage.Stats, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(records, stats, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
