package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ljcell/internal/dynamo"
	"github.com/san-kum/ljcell/internal/metrics"
)

// EvalFunc performs one force evaluation.
type EvalFunc func() (dynamo.Sample, error)

type sampleMsg struct {
	sample dynamo.Sample
	err    error
}

// BenchModel runs a fixed number of evaluations one after another and shows
// progress and timings while they run.
type BenchModel struct {
	title    string
	eval     EvalFunc
	total    int
	samples  []dynamo.Sample
	millis   []float64
	rate     *metrics.PairRate
	energy   *metrics.MeanEnergy
	running  bool
	inFlight bool
	err      error
	started  time.Time
	width    int
}

func NewBenchModel(title string, repeats int, eval EvalFunc) BenchModel {
	return BenchModel{
		title:    title,
		eval:     eval,
		total:    repeats,
		samples:  make([]dynamo.Sample, 0, max(repeats, 0)),
		millis:   make([]float64, 0, max(repeats, 0)),
		rate:     metrics.NewPairRate(),
		energy:   metrics.NewMeanEnergy(),
		running:  true,
		inFlight: repeats > 0,
		width:    60,
	}
}

func (m BenchModel) Init() tea.Cmd {
	if m.total < 1 {
		return tea.Quit
	}
	return m.next()
}

func (m BenchModel) next() tea.Cmd {
	eval := m.eval
	return func() tea.Msg {
		s, err := eval()
		return sampleMsg{sample: s, err: err}
	}
}

func (m BenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && !m.inFlight && !m.finished() {
				m.inFlight = true
				return m, m.next()
			}
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-10, 20)
	case sampleMsg:
		m.inFlight = false
		if m.started.IsZero() {
			m.started = time.Now()
		}
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.samples = append(m.samples, msg.sample)
		m.millis = append(m.millis, float64(msg.sample.Elapsed.Microseconds())/1000)
		m.rate.Observe(msg.sample)
		m.energy.Observe(msg.sample)

		if m.finished() {
			return m, tea.Quit
		}
		if m.running {
			m.inFlight = true
			return m, m.next()
		}
	}
	return m, nil
}

func (m BenchModel) finished() bool {
	return len(m.samples) >= m.total
}

func (m BenchModel) View() string {
	var s strings.Builder

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = StatusFailed.Render("FAILED")
	case m.finished():
		status = StatusRunning.Render("DONE")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(Title.Render(m.title) + "  " + status + "\n\n")

	done := len(m.samples)
	s.WriteString(ProgressBar(float64(done)/float64(max(m.total, 1)), m.width))
	s.WriteString(fmt.Sprintf(" %d/%d\n\n", done, m.total))

	rows := []Row{
		{"mean time", fmt.Sprintf("%.3f ms", mean(m.millis))},
		{"pairs/s", fmt.Sprintf("%.3g", m.rate.Value())},
		{"energy/atom", fmt.Sprintf("%.6f", m.energy.Value())},
	}
	for _, r := range rows {
		s.WriteString(MetricLabel.Render(r.Label) + MetricValue.Render(r.Value) + "\n")
	}
	s.WriteString("\n" + Sparkline(m.millis, m.width) + "\n")

	if m.err != nil {
		s.WriteString("\n" + StatusFailed.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("space: pause/resume  q: quit"))
	return s.String()
}

// Samples returns the evaluations completed so far.
func (m BenchModel) Samples() []dynamo.Sample { return m.samples }

func (m BenchModel) Err() error { return m.err }

// RunBench shows a BenchModel until it finishes or the user quits and
// returns the samples it collected.
func RunBench(title string, repeats int, eval EvalFunc) ([]dynamo.Sample, error) {
	p := tea.NewProgram(NewBenchModel(title, repeats, eval))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	bm := final.(BenchModel)
	return bm.Samples(), bm.Err()
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Sum(v) / float64(len(v))
}
