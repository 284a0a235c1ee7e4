package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	rotateStep = math.Pi / 36
	spinRate   = math.Pi / 90
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(32)
)

// TickMsg advances a spin. Ticks from an earlier spin are dropped.
type TickMsg struct {
	gen int
}

// Viewer is an interactive bubbletea model that orbits a set of tracks.
type Viewer struct {
	title         string
	tracks        [][]Vec3
	points        int
	camera        *Camera
	view          string
	canvas        *Canvas
	width, height int
	box, spinning bool
	spinGen       int
	showHelp      bool
}

// NewViewer builds a viewer for normalized tracks.
func NewViewer(title string, tracks [][]Vec3, view View, width, height int) Viewer {
	cam := NewCamera()
	cam.Apply(view)
	n := 0
	for _, t := range tracks {
		n += len(t)
	}
	return Viewer{
		title:  title,
		tracks: tracks,
		points: n,
		camera: cam,
		view:   view.Name,
		canvas: NewCanvas(width, height),
		width:  width,
		height: height,
		box:    true,
	}
}

// WithBox sets whether the bounding box starts visible.
func (m Viewer) WithBox(on bool) Viewer {
	m.box = on
	return m
}

func (m Viewer) Init() tea.Cmd { return nil }

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second/30, func(time.Time) tea.Msg { return TickMsg{gen: gen} })
}

func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.camera.RotateAzimuth(-rotateStep)
		case "right", "l":
			m.camera.RotateAzimuth(rotateStep)
		case "up", "k":
			m.camera.RotateElevation(rotateStep)
		case "down", "j":
			m.camera.RotateElevation(-rotateStep)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "v":
			next := NextView(m.view)
			m.camera.Apply(next)
			m.view = next.Name
		case "b":
			m.box = !m.box
		case "?":
			m.showHelp = !m.showHelp
		case " ":
			m.spinning = !m.spinning
			if m.spinning {
				m.spinGen++
				return m, tick(m.spinGen)
			}
		}
	case tea.WindowSizeMsg:
		// leave room for the stats column
		w, h := msg.Width-40, msg.Height-2
		if w > 10 && h > 5 {
			m.width, m.height = w, h
			m.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		if m.spinning && msg.gen == m.spinGen {
			m.camera.RotateAzimuth(spinRate)
			return m, tick(m.spinGen)
		}
	}
	return m, nil
}

// Frame renders the current camera position to a string.
func (m Viewer) Frame() string {
	m.canvas.Clear()
	RenderTracks(m.canvas, m.tracks, m.camera, m.box)
	return m.canvas.String()
}

func (m Viewer) View() string {
	th := CurrentTheme
	var stats strings.Builder
	stats.WriteString(th.Title().Render(m.title) + "\n\n")
	stats.WriteString(th.Field("tracks", len(m.tracks)) + "\n")
	stats.WriteString(th.Field("points", m.points) + "\n")
	stats.WriteString(th.Field("view", m.view) + "\n")
	stats.WriteString(th.Field("azimuth", fmt.Sprintf("%.0f°", m.camera.Azimuth*180/math.Pi)) + "\n")
	stats.WriteString(th.Field("elevation", fmt.Sprintf("%.0f°", m.camera.Elevation*180/math.Pi)) + "\n")
	stats.WriteString(th.Field("zoom", fmt.Sprintf("%.2fx", m.camera.Zoom)) + "\n\n")
	if m.showHelp {
		stats.WriteString(th.Hint().Render("←/→ h/l  azimuth\n↑/↓ k/j  elevation\n+/-      zoom\nv        next view\nb        toggle box\nspace    spin\nq        quit"))
	} else {
		stats.WriteString(th.Hint().Render("? help  q quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.Frame()),
		statsStyle.Render(stats.String()),
	)
}

// RunViewer starts the interactive viewer full screen.
func RunViewer(v Viewer) error {
	p := tea.NewProgram(v, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
