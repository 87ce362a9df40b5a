// Package metrics samples the system statistics drawn by the popup graphs.
package metrics

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/net"
)

// Source provides one reading of each statistic per call.
type Source interface {
	// CPUPercent is the total CPU utilization since the previous call, in
	// [0, 100].
	CPUPercent() (float64, error)
	// MemoryPercent is the used fraction of physical memory, in [0, 100].
	MemoryPercent() (float64, error)
	// NetworkBytes is the cumulative number of bytes received and sent on
	// all interfaces.
	NetworkBytes() (uint64, error)
}

// System reads the local machine's statistics.
type System struct{}

func (System) CPUPercent() (float64, error) {
	// A zero interval compares against the previous call's counters.
	p, err := cpu.Percent(0, false)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(p) == 0 {
		return 0, nil
	}
	return p[0], nil
}

func (System) MemoryPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.UsedPercent, nil
}

func (System) NetworkBytes() (uint64, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return 0, fmt.Errorf("net io counters: %w", err)
	}
	total := uint64(0)
	for _, c := range counters {
		total += c.BytesRecv + c.BytesSent
	}
	return total, nil
}

// Rate turns a cumulative counter into a per-second rate.
type Rate struct {
	last     uint64
	lastTime time.Time
	primed   bool
}

// Observe records counter at time now and returns the rate since the
// previous observation. The first observation, and any observation where the
// counter went backwards, returns zero.
func (r *Rate) Observe(counter uint64, now time.Time) float64 {
	last, lastTime, primed := r.last, r.lastTime, r.primed
	r.last, r.lastTime, r.primed = counter, now, true
	if !primed || counter < last {
		return 0
	}
	dt := now.Sub(lastTime).Seconds()
	if dt <= 0 {
		return 0
	}
	return float64(counter-last) / dt
}

// Snapshot is one reading of every statistic, taken off the main loop and
// replayed on it.
type Snapshot struct {
	CPU    float64
	Memory float64
	Net    uint64

	CPUErr, MemoryErr, NetErr error
}

// Take reads every statistic from src once.
func Take(src Source) Snapshot {
	var s Snapshot
	s.CPU, s.CPUErr = src.CPUPercent()
	s.Memory, s.MemoryErr = src.MemoryPercent()
	s.Net, s.NetErr = src.NetworkBytes()
	return s
}

func (s Snapshot) CPUPercent() (float64, error)    { return s.CPU, s.CPUErr }
func (s Snapshot) MemoryPercent() (float64, error) { return s.Memory, s.MemoryErr }
func (s Snapshot) NetworkBytes() (uint64, error)   { return s.Net, s.NetErr }
