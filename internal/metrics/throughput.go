package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/san-kum/ljcell/internal/dynamo"
)

// PairRate is the number of atom pairs visited per second of evaluation time.
type PairRate struct {
	name    string
	pairs   uint64
	elapsed time.Duration
}

func NewPairRate() *PairRate {
	return &PairRate{name: "pairs_per_second"}
}

func (p *PairRate) Name() string { return p.name }

func (p *PairRate) Observe(s dynamo.Sample) {
	p.pairs += s.Pairs
	p.elapsed += s.Elapsed
}

func (p *PairRate) Value() float64 {
	if p.elapsed <= 0 {
		return 0
	}
	return float64(p.pairs) / p.elapsed.Seconds()
}

func (p *PairRate) Reset() {
	p.pairs = 0
	p.elapsed = 0
}

// Section aggregates the wall time reported for one named section.
type Section struct {
	Name  string
	Calls int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

func (s Section) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Timing collects section timings. Record satisfies dynamo.TimingFunc and is
// safe to call from several goroutines.
type Timing struct {
	mu       sync.Mutex
	sections map[string]*Section
}

func NewTiming() *Timing {
	return &Timing{sections: make(map[string]*Section)}
}

func (t *Timing) Record(name string, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sections[name]
	if !ok {
		s = &Section{Name: name, Min: elapsed, Max: elapsed}
		t.sections[name] = s
	}
	s.Calls++
	s.Total += elapsed
	s.Min = min(s.Min, elapsed)
	s.Max = max(s.Max, elapsed)
}

// Sections returns a snapshot sorted by name.
func (t *Timing) Sections() []Section {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Section, 0, len(t.sections))
	for _, s := range t.sections {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *Timing) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.sections)
}
