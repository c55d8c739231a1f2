// Package md drives repeated force evaluations of a particle configuration
// through a cell list and a pair potential.
package md

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ljcell/internal/celllist"
	"github.com/san-kum/ljcell/internal/dynamo"
	"github.com/san-kum/ljcell/internal/potentials"
)

// Observer is notified after every successful evaluation.
type Observer interface {
	OnSample(call int, s dynamo.Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(call int, s dynamo.Sample)

func (f ObserverFunc) OnSample(call int, s dynamo.Sample) { f(call, s) }

type Evaluator struct {
	box       dynamo.Box
	grid      *celllist.Grid
	lj        *potentials.LennardJones
	metrics   []dynamo.Metric
	observers []Observer

	forces []dynamo.Vec3
	calls  int
}

// New builds the cell list for box with cells no smaller than the cutoff and
// checks that lj can be evaluated on it.
func New(box dynamo.Box, lj *potentials.LennardJones) (*Evaluator, error) {
	grid, err := celllist.NewGrid(box, lj.CutoffRadius())
	if err != nil {
		return nil, err
	}
	if err := lj.Validate(box, grid); err != nil {
		return nil, err
	}
	return &Evaluator{
		box:       box,
		grid:      grid,
		lj:        lj,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (e *Evaluator) AddMetric(m dynamo.Metric) { e.metrics = append(e.metrics, m) }
func (e *Evaluator) AddObserver(o Observer)    { e.observers = append(e.observers, o) }

func (e *Evaluator) Box() dynamo.Box                     { return e.box }
func (e *Evaluator) Grid() *celllist.Grid                { return e.grid }
func (e *Evaluator) Potential() *potentials.LennardJones { return e.lj }
func (e *Evaluator) Calls() int                          { return e.calls }

// Evaluate bins positions, clears the force accumulators and computes forces,
// energy and virial. The returned slice is indexed by atom and reused by the
// next call. Metrics see failed evaluations too, marked Sample.Failed;
// observers only see successful ones.
func (e *Evaluator) Evaluate(positions []dynamo.Vec3) (dynamo.Sample, []dynamo.Vec3, error) {
	call := e.calls
	e.calls++

	for i, p := range positions {
		if !p.IsValid() {
			return dynamo.Sample{}, nil, &dynamo.EvalError{
				Call: call, Atom: i,
				Wrapped: fmt.Errorf("%w: non-finite position %v", dynamo.ErrInvalidParameter, p),
			}
		}
	}

	before := e.lj.NumPairsComputed()
	start := time.Now()

	e.grid.Build(positions)
	e.grid.ZeroForces()
	e.lj.CalculateForcesAndEnergy(e.box, e.grid)
	e.forces = e.grid.Forces(e.forces)

	sample := dynamo.Sample{
		NumAtoms:        len(positions),
		PotentialEnergy: e.lj.PotentialEnergy(),
		PressureVirial:  e.lj.PressureVirial(),
		Pairs:           e.lj.NumPairsComputed() - before,
		Elapsed:         time.Since(start),
	}

	evalErr := e.check(call)
	sample.Failed = evalErr != nil

	for _, m := range e.metrics {
		m.Observe(sample)
	}
	if evalErr != nil {
		return sample, e.forces, evalErr
	}
	for _, o := range e.observers {
		o.OnSample(call, sample)
	}
	return sample, e.forces, nil
}

func (e *Evaluator) check(call int) error {
	if err := e.lj.Err(); err != nil {
		return &dynamo.EvalError{Call: call, Atom: -1, Wrapped: err}
	}
	for i, f := range e.forces {
		if !f.IsValid() {
			return &dynamo.EvalError{Call: call, Atom: i, Wrapped: dynamo.ErrInvalidForces}
		}
	}
	return nil
}

type Result struct {
	Samples []dynamo.Sample
	Forces  []dynamo.Vec3
	Metrics map[string]float64
}

// Run evaluates the same configuration repeats times, the way a benchmark
// or a consistency check would. Metrics are reset first. When an evaluation
// fails, Result.Metrics still holds the values up to and including it.
func (e *Evaluator) Run(ctx context.Context, positions []dynamo.Vec3, repeats int) (*Result, error) {
	if repeats < 1 {
		return nil, fmt.Errorf("%w: repeats must be >= 1, got %d", dynamo.ErrInvalidParameter, repeats)
	}

	result := &Result{
		Samples: make([]dynamo.Sample, 0, repeats),
		Metrics: make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	for i := 0; i < repeats; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		sample, forces, err := e.Evaluate(positions)
		if err != nil {
			e.collect(result)
			return result, err
		}
		result.Samples = append(result.Samples, sample)
		result.Forces = forces
	}

	e.collect(result)
	return result, nil
}

func (e *Evaluator) collect(result *Result) {
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
