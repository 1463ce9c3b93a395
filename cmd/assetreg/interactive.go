package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/config"
	"github.com/riftlab/asset-registry/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateLoading browserState = iota
	stateBrowse
	stateFilter
	stateInspect
)

type readyMsg struct {
	err error
}

type refreshedMsg struct {
	err error
}

type browserModel struct {
	reg   *registry.Registry
	state browserState

	categories []assetregistry.Category
	active     int
	names      []string
	counts     map[assetregistry.Category]int
	cursor     int

	filter textinput.Model
	spin   spinner.Model

	detail string
	status string
	err    error
}

func newBrowserModel(cfg *config.Config) browserModel {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.CharLimit = 64
	filter.Width = 24

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle

	// The TUI owns the terminal, so the registry logs nowhere.
	return browserModel{
		reg:        registry.New(cfg, registry.WithLogger(zap.NewNop())),
		state:      stateLoading,
		categories: assetregistry.Categories(),
		filter:     filter,
		spin:       sp,
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.initialize)
}

func (m browserModel) initialize() tea.Msg {
	return readyMsg{err: m.reg.Initialize(context.Background())}
}

func (m browserModel) doRefresh() tea.Msg {
	return refreshedMsg{err: m.reg.Refresh(context.Background())}
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case readyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.state = stateBrowse
		m.reload()
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("refresh failed: %v", msg.err))
			return m, nil
		}
		m.reload()
		m.status = resultStyle.Render("refreshed " + time.Now().Format("15:04:05"))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.state {
		case stateLoading:
			if msg.String() == "q" {
				return m.quit()
			}
			return m, nil
		case stateFilter:
			return m.updateFilter(msg)
		case stateInspect:
			return m.updateInspect(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m browserModel) quit() (tea.Model, tea.Cmd) {
	if m.reg.State() == registry.StateReady {
		m.reg.Shutdown(context.Background())
	}
	return m, tea.Quit
}

func (m browserModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "tab", "right", "l":
		m.active = (m.active + 1) % len(m.categories)
		m.reload()
	case "shift+tab", "left", "h":
		m.active = (m.active + len(m.categories) - 1) % len(m.categories)
		m.reload()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "/":
		m.state = stateFilter
		m.filter.Focus()
		return m, textinput.Blink
	case "r":
		return m, m.doRefresh
	case "enter":
		visible := m.visible()
		if m.cursor < len(visible) {
			m.detail = m.inspect(visible[m.cursor])
			m.state = stateInspect
		}
	}
	return m, nil
}

func (m browserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.SetValue("")
		m.filter.Blur()
		m.state = stateBrowse
		m.clamp()
		return m, nil
	case "enter":
		m.filter.Blur()
		m.state = stateBrowse
		m.clamp()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.clamp()
	return m, cmd
}

func (m browserModel) updateInspect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "enter":
		m.detail = ""
		m.state = stateBrowse
	}
	return m, nil
}

// reload re-pulls names and counts after initialization, a refresh or
// a category switch.
func (m *browserModel) reload() {
	m.names = m.reg.Names(m.categories[m.active])
	sort.Strings(m.names)
	m.counts = m.reg.Counts()
	m.clamp()
}

func (m *browserModel) clamp() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visible applies the filter input to the current category's names.
func (m *browserModel) visible() []string {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return m.names
	}
	var out []string
	for _, name := range m.names {
		if strings.Contains(strings.ToLower(name), query) {
			out = append(out, name)
		}
	}
	return out
}

// inspect retrieves the asset, which marks it used, and formats its
// details for the detail pane.
func (m *browserModel) inspect(name string) string {
	var b strings.Builder
	line := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), fmt.Sprintf(format, args...))
	}

	switch m.categories[m.active] {
	case assetregistry.CategoryMesh:
		msh, err := m.reg.Mesh(name)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		line("mesh", "%s", msh.Name())
		line("vertices", "%d", len(msh.Vertices()))
		line("triangles", "%d", msh.Triangles())
		line("source", "%s", sourceOf(msh.Resource().Path()))
	case assetregistry.CategoryTexture:
		tex, err := m.reg.Texture(name)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		line("texture", "%s", tex.Name())
		line("size", "%dx%d", tex.Width(), tex.Height())
		line("source", "%s", sourceOf(tex.Resource().Path()))
	case assetregistry.CategoryMaterial:
		mat, err := m.reg.Material(name)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		line("material", "%s", mat.Name())
		line("diffuse", "%s", mat.Diffuse())
		if mat.Normal() != "" {
			line("normal", "%s", mat.Normal())
		}
		line("shininess", "%g", mat.Shininess())
		tint := mat.Tint()
		line("tint", "%.2f %.2f %.2f", tint[0], tint[1], tint[2])
		if params := mat.ParamNames(); len(params) > 0 {
			line("params", "%s", strings.Join(params, ", "))
		}
		line("source", "%s", sourceOf(mat.Resource().Path()))
	case assetregistry.CategoryAnimation:
		clip, err := m.reg.Animation(name)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		line("animation", "%s", clip.Name())
		line("duration", "%.2fs", clip.Duration())
		line("tracks", "%d", len(clip.Tracks()))
		line("source", "%s", sourceOf(clip.Resource().Path()))
	case assetregistry.CategorySound:
		snd, err := m.reg.Sound(name)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		line("sound", "%s", snd.Name())
		line("rate", "%d Hz", int(snd.Format().SampleRate))
		line("duration", "%s", snd.Duration().Round(time.Millisecond))
		line("source", "%s", sourceOf(snd.Resource().Path()))
	}
	return b.String()
}

func sourceOf(path string) string {
	if path == "" {
		return "(builtin)"
	}
	return path
}

func (m browserModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Asset Registry"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		b.WriteString("\n")
		return b.String()
	}

	if m.state == stateLoading {
		fmt.Fprintf(&b, "%s loading assets...\n", m.spin.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q quit"))
		b.WriteString("\n")
		return b.String()
	}

	for i, cat := range m.categories {
		label := fmt.Sprintf("%s %d", cat, m.counts[cat])
		if i == m.active {
			b.WriteString(activeTabStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	if m.state == stateInspect {
		b.WriteString(m.detail)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
		b.WriteString("\n")
		return b.String()
	}

	if m.state == stateFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(helpStyle.Render("no assets"))
		b.WriteString("\n")
	}
	for i, name := range visible {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.state == stateFilter {
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • tab category • enter inspect • / filter • r refresh • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func runInteractive(cfg *config.Config) error {
	p := tea.NewProgram(newBrowserModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
