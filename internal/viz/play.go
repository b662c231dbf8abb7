package viz

import (
	"fmt"
	"image"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravitywell/internal/config"
	"github.com/san-kum/gravitywell/internal/level"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	trailCapacity   = 400
	historyCapacity = 120
	aimScale        = 6.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	factStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("220")).Padding(0, 1).Width(40)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model plays one level of a world in the terminal.
type Model struct {
	world   *sim.World
	level   *level.Level
	canvas  *Canvas
	theme   Theme
	palette []colorful.Color
	widgets []Widget

	gravityMode bool
	facts       []string
	factPaused  bool
	status      string
	trail       []vec.Vec2
	distance    []float64
	advanced    bool
	showHelp    bool
}

// NewModel wraps a started world. The replay palette comes from s.
func NewModel(w *sim.World, l *level.Level, s *config.Settings, theme string) (Model, error) {
	palette, err := ReplayColors(s.Replay.WidgetColor, s.Replay.Exponent, s.Replay.Capacity)
	if err != nil {
		return Model{}, fmt.Errorf("replay colours: %w", err)
	}
	p := w.Params()
	m := Model{
		world:    w,
		level:    l,
		canvas:   NewCanvas(canvasWidth, canvasHeight, image.Pt(p.ScreenW, p.ScreenH)),
		theme:    GetTheme(theme),
		palette:  palette,
		trail:    make([]vec.Vec2, 0, trailCapacity),
		distance: make([]float64, 0, historyCapacity),
	}
	m.relayout()
	return m, nil
}

func (m Model) World() *sim.World { return m.world }

// Advanced reports whether the player accepted the level-complete prompt.
func (m Model) Advanced() bool { return m.advanced }

func tick(rate float64) tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick(m.world.TickRate())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if len(m.facts) == 0 {
			m.observe(m.world.Tick())
		}
		m.relayout()
		return m, tick(m.world.TickRate())
	}
	return m, nil
}

func (m *Model) relayout() {
	m.widgets = Layout(m.world)
	m.world.SetWidgetRects(rects(m.widgets))
}

// observe folds one tick's events into the view state. Unlocked facts pause
// the world until every one of them is acknowledged.
func (m *Model) observe(ev sim.Events) {
	if m.world.Phase() == sim.Flight {
		if hero, ok := m.world.Body(m.world.Hero()); ok && hero.Visible() {
			m.trail = appendCapped(m.trail, hero.COM(), trailCapacity)
			if target, ok := m.world.Body(m.world.Target()); ok {
				m.distance = appendCapped(m.distance, hero.COM().Sub(target.COM()).Len(), historyCapacity)
			}
		}
	}

	switch {
	case ev.LevelComplete:
		m.status = fmt.Sprintf("reached %s! next level? (y/n)", m.world.Target())
	case ev.Crash != nil:
		m.status = fmt.Sprintf("crashed into %s after %.1fs", ev.Crash.Body, ev.Crash.Elapsed.Seconds())
	case ev.Escaped:
		m.status = "lost in space"
	}

	for _, k := range ev.Facts {
		if text, ok := m.level.Fact(k.Body, k.Index); ok {
			m.facts = append(m.facts, text)
		}
	}
	if len(m.facts) > 0 && !m.factPaused && m.world.Running() {
		m.factPaused = m.world.TogglePause()
	}
}

func (m *Model) acknowledgeFact() {
	m.facts = m.facts[1:]
	if len(m.facts) == 0 && m.factPaused {
		m.world.TogglePause()
		m.factPaused = false
	}
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	s = append(s, v)
	if len(s) > capacity {
		s = s[1:]
	}
	return s
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		return m, tea.Quit
	}
	if len(m.facts) > 0 {
		if key == "enter" || key == " " {
			m.acknowledgeFact()
		}
		return m, nil
	}

	w := m.world
	switch key {
	case "enter":
		switch w.Phase() {
		case sim.Preview:
			w.ReadyLaunch()
		case sim.Aiming:
			if w.Launch() {
				m.trail = m.trail[:0]
				m.distance = m.distance[:0]
				m.status = ""
			}
		}
	case "o":
		w.RequestObserve()
	case "r":
		w.RequestReset()
	case "p", " ":
		w.TogglePause()
	case "g":
		m.gravityMode = !m.gravityMode
	case "up", "right":
		m.nudge(key, 1)
	case "down", "left":
		m.nudge(key, -1)
	case "tab":
		w.RecallAttempt(0)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		w.RecallAttempt(int(key[0] - '1'))
	case "y":
		if w.Advance() {
			m.advanced = true
			return m, tea.Quit
		}
	case "n":
		if w.Stay() {
			m.status = ""
		}
	case "t":
		m.theme = nextTheme(m.theme)
	case "s":
		m.draw()
		name := fmt.Sprintf("gravitywell_lvl%d_%d.svg", m.level.ID, time.Now().Unix())
		if err := os.WriteFile(name, []byte(m.canvas.SVG(4)), 0644); err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + name
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	m.relayout()
	return m, nil
}

// nudge routes the arrow keys: gravity in gravity mode, otherwise speed on
// up/down and angle on left/right while aiming.
func (m *Model) nudge(key string, dir int) {
	switch {
	case m.gravityMode:
		m.world.NudgeGravity(dir)
	case key == "up" || key == "down":
		m.world.NudgeSpeed(dir)
	default:
		m.world.NudgeAngle(dir)
	}
}

func (m Model) draw() {
	w := m.world
	c := m.canvas
	c.Clear()

	trailColor := m.theme.Muted
	if len(m.palette) > 0 {
		trailColor = lipgloss.Color(m.palette[0].Hex())
	}
	for _, p := range m.trail {
		x, y := c.Project(p)
		c.Set(x, y, trailColor)
	}

	for _, b := range w.Bodies() {
		color := m.theme.Body
		switch b.Name() {
		case w.Hero():
			color = m.theme.Hero
		case w.Target():
			color = m.theme.Target
		case w.Home():
			color = m.theme.Home
		}
		c.DrawBody(b, color)
	}

	if target, ok := w.Body(w.Target()); ok && w.HaloVisible() {
		c.DrawCircle(target.COM(), target.RoughRadius()*1.4, m.theme.Halo)
	}
	if home, ok := w.Body(w.Home()); ok && w.Phase() == sim.Aiming {
		from := home.COM().Add(vec.Unit(w.Aim()).Mul(home.RoughRadius()))
		c.DrawLine(from, from.Add(w.Aim().Mul(aimScale)), m.theme.Aim)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())
	w := m.world

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("LEVEL %d  %s", m.level.ID, strings.ToUpper(m.level.Name))) + "\n")
	s.WriteString(m.phaseLine() + "\n")
	if m.status != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Alert).Render(m.status) + "\n")
	}
	s.WriteString("\n")

	g := fmt.Sprintf("%.1f", w.G())
	if m.gravityMode {
		s.WriteString(labelStyle.Render("G") + activeStyle.Render("> "+g) + "\n")
	} else {
		s.WriteString(labelStyle.Render("G") + valueStyle.Render(g) + "\n")
	}
	s.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(fmt.Sprintf("%.1fs", w.Elapsed().Seconds())) + "\n")
	speed, _ := vec.ToPolar(w.Aim())
	s.WriteString(labelStyle.Render("Aim") + valueStyle.Render(fmt.Sprintf("%.1f @ %.0f°", speed, w.LaunchAngle())) + "\n")
	s.WriteString(labelStyle.Render("Tick rate") + valueStyle.Render(fmt.Sprintf("%.0f/s", w.TickRate())) + "\n")

	for _, wd := range m.widgets {
		if wd.Kind != WidgetSlider {
			continue
		}
		bar := ProgressBar(wd.Fill(), 20)
		s.WriteString(labelStyle.Render(wd.Label) + bar + "\n")
	}

	if len(m.distance) > 1 {
		chart := asciigraph.Plot(m.distance, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Target distance"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nSCORES\n")
	scores := w.Scores()
	names := make([]string, 0, len(scores))
	for name, points := range scores {
		if points > 0 {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return scores[names[i]] > scores[names[j]] })
	if len(names) > 5 {
		names = names[:5]
	}
	for _, name := range names {
		s.WriteString(labelStyle.Render(name) + valueStyle.Render(fmt.Sprintf("%.0f", scores[name])) + "\n")
	}

	if records := w.Replay(); len(records) > 0 {
		s.WriteString("\nATTEMPTS\n")
		for i, r := range records {
			sp, ang := vec.ToPolar(r.Velocity)
			line := fmt.Sprintf("%d  %5.1f @ %4.0f°  %s", i+1, sp, ang*180/math.Pi, r.Outcome)
			style := lipgloss.NewStyle().Foreground(recordColor(m.palette, i, r, w.Target()))
			s.WriteString(style.Render(line) + "\n")
		}
	}

	if len(m.facts) > 0 {
		s.WriteString("\n" + factStyle.Render(m.facts[0]+"\n\n[enter] continue") + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nENTER:Ready/Launch O:Observe R:Reset\nP:Pause G:Gravity ←→↑↓:Aim\nTAB/1-9:Recall S:Shot Q:Quit ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m Model) phaseLine() string {
	w := m.world
	switch {
	case w.AwaitingConfirmation():
		return "LEVEL COMPLETE"
	case w.Paused():
		return "PAUSED"
	case w.Offscreen():
		return "OFF SCREEN"
	}
	return strings.ToUpper(w.Phase().String())
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Enter    - Ready / Launch           ║
║  O        - Back to observing        ║
║  R        - Reset                    ║
║  P/Space  - Pause/Resume             ║
║  ←→       - Launch angle             ║
║  ↑↓       - Launch speed             ║
║  G        - Arrows change gravity    ║
║  Tab, 1-9 - Recall an attempt        ║
║  Y/N      - Next level / stay        ║
║  T        - Cycle themes             ║
║  S        - Save an SVG screenshot   ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// ProgressBar renders a filled bar for a fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
