package metrics

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// ProcessUsage is a snapshot of this process's resource use.
type ProcessUsage struct {
	CPUPercent float64 `json:"cpu_percent"`
	RSS        uint64  `json:"rss"`
	Threads    int32   `json:"threads"`
}

// SampleProcess reads CPU share since process start, resident memory and OS
// thread count for the current process.
func SampleProcess() (ProcessUsage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessUsage{}, err
	}

	cpu, err := p.CPUPercent()
	if err != nil {
		return ProcessUsage{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return ProcessUsage{}, err
	}
	threads, err := p.NumThreads()
	if err != nil {
		return ProcessUsage{}, err
	}

	return ProcessUsage{CPUPercent: cpu, RSS: mem.RSS, Threads: threads}, nil
}
