package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/world"
)

// footerHeight is the number of rows below the board: status line and help.
const footerHeight = 2

// Options configures a game model.
type Options struct {
	Config config.SnakeConfig
	Policy loop.Policy // nil means the reference curve
	Seed   int64       // 0 picks a time-based seed for every game
	Player string
	Store  *storage.Store // nil disables score saving
	Logger *log.Logger
	Width  int
	Height int
	Debug  bool // show world internals in the status line
}

// game is one round: a world and the controller driving it.
// Model copies share it through a pointer.
type game struct {
	gen   int
	world *world.World
	ctrl  *loop.Controller
	saved bool
	err   error
}

// Model is the Bubble Tea model for a snake game.
type Model struct {
	opts     Options
	screen   *core.Screen
	board    *BoardRenderer
	game     *game
	keys     HostKeyMap
	help     help.Model
	best     *int
	quitting bool
}

// NewModel creates a new Bubble Tea model. The first game starts in Init.
func NewModel(opts Options) Model {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}

	screen := core.NewScreen(opts.Width, max(1, opts.Height-footerHeight))
	best := 0
	if opts.Store != nil {
		if high, err := opts.Store.HighScore(); err == nil {
			best = high
		} else {
			opts.Logger.Warn("could not read high score", "error", err)
		}
	}

	h := help.New()
	h.Width = opts.Width

	m := Model{
		opts:   opts,
		screen: screen,
		board:  NewBoardRenderer(screen),
		keys:   DefaultHostKeyMap(),
		help:   h,
		best:   &best,
	}
	m.game = m.newGame(1)
	return m
}

func (m Model) newGame(gen int) *game {
	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &game{gen: gen, world: world.New(m.opts.Config.World(seed))}
	g.ctrl = loop.New(g.world, m.board,
		loop.WithPolicy(m.opts.Policy),
		loop.WithKeyMap(loop.TerminalKeyMap()),
		loop.WithLogger(m.opts.Logger),
		loop.WithHaltHook(func(final world.Status) { m.finish(g, final) }),
	)
	return g
}

// finish records the final score once per game.
func (m Model) finish(g *game, final world.Status) {
	if final.Score > *m.best {
		*m.best = final.Score
	}
	if g.saved || m.opts.Store == nil {
		return
	}
	g.saved = true

	_, err := m.opts.Store.SaveGame(storage.GameRecord{
		Player:     m.opts.Player,
		Score:      final.Score,
		Level:      final.Level,
		Outcome:    final.Outcome,
		Difficulty: string(m.opts.Config.Difficulty.Preset),
		Ticks:      g.ctrl.Ticks(),
	})
	if err != nil {
		g.err = err
		m.opts.Logger.Warn("could not save score", "error", err)
	}
}

// start paints the first frame and arms the first tick.
func (m Model) start() tea.Cmd {
	delay, active := m.game.ctrl.Start()
	if !active {
		return nil
	}
	return tickCmd(m.game.gen, delay)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	return m.start()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.game.ctrl.Phase() != loop.PhaseHalted {
			return m, nil
		}
		m.game = m.newGame(m.game.gen + 1)
		return m, m.start()
	}

	m.game.ctrl.Input(msg.String())
	return m, nil
}

// handleResize processes window resize events and repaints the last frame.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Width, m.opts.Height = msg.Width, msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-footerHeight))
	m.help.Width = msg.Width

	if m.game.ctrl.Phase() != loop.PhaseIdle {
		m.board.Render(m.game.ctrl.Dimensions(), m.game.ctrl.Last())
	}
	return m, nil
}

// handleTick runs one controller tick and re-arms only while the game is active.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.game.gen {
		return m, nil
	}

	delay, active := m.game.ctrl.Tick()
	if !active {
		return m, nil
	}
	return m, tickCmd(m.game.gen, delay)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ctrl := m.game.ctrl
	status := fmt.Sprintf("%.2f fps  ·  tick %d  ·  best %d", ctrl.Rate(), ctrl.Ticks(), *m.best)
	if ctrl.Phase() == loop.PhaseHalted {
		status += "  ·  press r to play again"
	}
	if m.game.err != nil {
		status += "  ·  score not saved"
	}
	if m.opts.Debug {
		status = m.game.world.DebugState()
	}

	return RenderScreen(m.screen) + "\n" +
		statusStyle.Render(centerText(status, m.opts.Width)) + "\n" +
		m.help.View(footerKeys{game: ctrl.KeyMap(), host: m.keys})
}

// Final returns the last status of the current game.
func (m Model) Final() world.Status {
	return m.game.ctrl.Last()
}

// centerText pads text so it is centered within width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return fmt.Sprintf("%*s%s", (width-n)/2, "", text)
}

// Run starts the Bubble Tea program and returns the final status.
func Run(opts Options) (world.Status, error) {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return world.Status{}, err
	}
	if m, ok := final.(Model); ok {
		return m.Final(), nil
	}
	return world.Status{}, nil
}
