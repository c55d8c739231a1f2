// Package viz renders evaluation results in the terminal.
//
// [Summary] draws a bordered label/value panel with lipgloss. [BenchModel] is
// a Bubble Tea program that runs repeated evaluations and shows progress, the
// running pair rate and a sparkline of per-evaluation wall time.
//
// # Key Bindings
//
//	Space - Pause/Resume the benchmark
//	Q     - Quit early, keeping the samples collected so far
package viz
