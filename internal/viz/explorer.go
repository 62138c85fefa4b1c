package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/experiment"
	"github.com/san-kum/menisim/internal/integrators"
	"github.com/san-kum/menisim/internal/meniscus"
)

// adjustment describes how +/- moves one parameter. Multiplicative steps
// suit the quantities that span decades.
type adjustment struct {
	key    string
	label  string
	factor float64
	delta  float64
	format string
}

var adjustments = []adjustment{
	{key: "theta_deg", label: "contact angle", delta: 1, format: "%.1f°"},
	{key: "R", label: "radius", factor: 1.1, format: "%.4g m"},
	{key: "gamma", label: "surface tension", factor: 1.05, format: "%.4g N/m"},
	{key: "rho", label: "density", factor: 1.1, format: "%.4g kg/m³"},
	{key: "g", label: "gravity", factor: 1.1, format: "%.4g m/s²"},
	{key: "n", label: "samples", delta: 10, format: "%.0f"},
}

type solvedMsg struct {
	seq     int
	profile *meniscus.Profile
	metrics map[string]float64
	err     error
}

// Explorer is the interactive parameter explorer.
type Explorer struct {
	cfg, start    config.Config
	cursor        int
	integrators   []string
	theme         int
	seq           int
	profile       *meniscus.Profile
	metrics       map[string]float64
	err           error
	width, height int
}

func NewExplorer(cfg config.Config) Explorer {
	return Explorer{
		cfg:         cfg,
		start:       cfg,
		integrators: integrators.Names(),
		width:       80,
		height:      24,
	}
}

// WithTheme selects the starting color theme by name.
func (m Explorer) WithTheme(name string) Explorer {
	m.theme = themeIndex(name)
	return m
}

func (m Explorer) Init() tea.Cmd { return m.solve() }

func (m Explorer) solve() tea.Cmd {
	cfg, seq := m.cfg, m.seq
	return func() tea.Msg {
		exp := experiment.New(cfg)
		if err := exp.Setup(nil); err != nil {
			return solvedMsg{seq: seq, err: err}
		}
		res, err := exp.Run()
		if err != nil {
			return solvedMsg{seq: seq, err: err}
		}
		return solvedMsg{seq: seq, profile: res.Profile, metrics: res.Metrics}
	}
}

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case solvedMsg:
		// Results of a superseded parameter set are dropped.
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.profile, m.metrics = msg.profile, msg.metrics
		}
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(adjustments)-1 {
			m.cursor++
		}
		return m, nil
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		return m, nil
	case "right", "l", "+", "=":
		m.adjust(+1)
	case "left", "h", "-", "_":
		m.adjust(-1)
	case "i":
		m.cfg.Solver.Integrator = m.nextIntegrator()
	case "r":
		m.cfg = m.start
	default:
		return m, nil
	}
	m.seq++
	return m, m.solve()
}

func (m *Explorer) adjust(dir float64) {
	a := adjustments[m.cursor]
	v, _ := m.cfg.Meniscus.Get(a.key)
	if a.factor != 0 {
		if dir > 0 {
			v *= a.factor
		} else {
			v /= a.factor
		}
	} else {
		v += dir * a.delta
	}
	_ = m.cfg.Meniscus.Set(a.key, v)
}

func (m Explorer) nextIntegrator() string {
	for i, name := range m.integrators {
		if name == m.cfg.Solver.Integrator {
			return m.integrators[(i+1)%len(m.integrators)]
		}
	}
	return m.integrators[0]
}

func (m Explorer) View() string {
	th := Themes[m.theme]
	var b strings.Builder

	b.WriteString("\n  " + th.title().Render("MENISIM") + "  " + th.muted().Render("meniscus explorer · "+m.cfg.Solver.Integrator) + "\n\n")

	var params strings.Builder
	for i, a := range adjustments {
		v, _ := m.cfg.Meniscus.Get(a.key)
		label := fmt.Sprintf("%-16s", a.label)
		val := fmt.Sprintf(a.format, v)
		if i == m.cursor {
			params.WriteString(th.selected().Render("▸ "+label) + " " + th.value().Render(val) + "\n")
		} else {
			params.WriteString(th.muted().Render("  "+label) + " " + val + "\n")
		}
	}
	b.WriteString(th.panel().Render(strings.TrimSuffix(params.String(), "\n")) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString("  " + th.errorStyle().Render("solve failed: "+m.err.Error()) + "\n")
	case m.profile == nil:
		b.WriteString("  " + th.muted().Render("solving...") + "\n")
	default:
		chartWidth := max(m.width-20, 20)
		chartHeight := max(m.height-len(adjustments)-16, 6)
		b.WriteString(Chart(m.profile, chartWidth, chartHeight) + "\n\n")
		b.WriteString(MetricLabel.Render("slope  ") + SparklineChart(m.profile.Slope, min(chartWidth, 60)) + "\n")
		b.WriteString(MetricLabel.Render("iters  ") + ProgressBar(m.profile.Iterations, m.cfg.Solver.MaxIter, 20) +
			fmt.Sprintf(" %d/%d", m.profile.Iterations, m.cfg.Solver.MaxIter) + "\n")
		b.WriteString(MetricLabel.Render("rise   ") + MetricValue.Render(fmt.Sprintf("%.4g mm", m.metrics["rise"]*1e3)) + "\n")
	}

	b.WriteString("\n  " + KeyHint.Render("j/k select  h/l adjust  i integrator  t theme  r reset  q quit") + "\n")
	return b.String()
}

// Run starts the explorer full screen.
func Run(cfg config.Config, theme string) error {
	_, err := tea.NewProgram(NewExplorer(cfg).WithTheme(theme), tea.WithAltScreen()).Run()
	return err
}
